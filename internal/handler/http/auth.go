// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-fullstack-auth/internal/app"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const tokenTypeBearer = "bearer"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", user.ID.String()).Msg("user registered")
	utils.WriteJSON(w, user, http.StatusCreated)
}

// login accepts credentials either as JSON {"email","password"} or as an
// OAuth2 password form (username, password).
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req, err := readLoginRequest(w, r)
	if err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	pair, err := h.services.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeTokenPair(w, pair)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeTokenPair(w, pair)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Message{Message: app.MsgLoggedOut}, http.StatusOK)
}

func (h *Handler) testToken(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// recoverPassword always answers with the same message so that callers
// cannot probe which emails are registered.
func (h *Handler) recoverPassword(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), email); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Message{Message: app.MsgPasswordRecoverySent}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		writeError(w, r, invalidBody(err))
		return
	}

	if err := h.services.AuthService.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Message{Message: app.MsgPasswordUpdated}, http.StatusOK)
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (models.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := r.ParseForm(); err != nil {
			return models.LoginRequest{}, fmt.Errorf("error parsing form: %w", err)
		}
		return models.LoginRequest{
			Email:    r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
		}, nil
	default:
		var req models.LoginRequest
		err := utils.ReadJSON(w, r, &req)
		return req, err
	}
}

// writeTokenPair writes the token response and mirrors the access token in
// the Authorization header.
func writeTokenPair(w http.ResponseWriter, pair models.TokenPair) {
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", pair.AccessToken.SignedString))
	utils.WriteJSON(w, newTokenResponse(pair), http.StatusOK)
}

func newTokenResponse(pair models.TokenPair) models.TokenResponse {
	var expiresIn int64
	claims := pair.AccessToken.Claims
	if claims.ExpiresAt != nil && claims.IssuedAt != nil {
		expiresIn = int64(claims.ExpiresAt.Sub(claims.IssuedAt.Time).Seconds())
	}

	return models.TokenResponse{
		AccessToken:  pair.AccessToken.SignedString,
		RefreshToken: pair.RefreshToken.SignedString,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    expiresIn,
	}
}

func invalidBody(err error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
}
