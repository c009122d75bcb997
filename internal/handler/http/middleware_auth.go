// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the access token from the "Authorization" header, resolves it
// to an active user via [service.AuthService.CurrentUser] and stores the user
// in the request context with [utils.WithUser].
//
// The middleware rejects requests with:
//   - 401 when the header is missing or malformed, or the token is expired
//     or invalid;
//   - 403 when the token belongs to an inactive user;
//   - 404 when the token subject no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.CurrentUser(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log := logger.FromRequest(r).GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", user.ID.String())
		})

		ctx = utils.WithUser(log.WithContext(ctx), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSuperuser must run after auth. It rejects users that do not hold
// [models.RoleSuperuser] with 403.
func (h *Handler) requireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if err := h.services.AuthService.Authorize(*user, models.RoleSuperuser); err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token from a raw
// "Authorization" header value of the form "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}

	return token, nil
}

// currentUser returns the user stored by auth. Handlers behind auth can rely
// on it being present.
func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, ErrEmptyAuthorizationHeader
	}
	return *user, nil
}
