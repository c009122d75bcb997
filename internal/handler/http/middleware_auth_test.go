// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", wantToken: "abc"},
		{name: "empty header", header: "", wantErr: ErrEmptyAuthorizationHeader},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "extra parts", header: "Bearer a b", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, got)
		})
	}
}

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		serviceErr error
		wantStatus int
		wantKind   string
		wantNext   bool
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantNext: true},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantKind: "not_authenticated"},
		{name: "malformed header", header: "Token good", wantStatus: http.StatusUnauthorized, wantKind: "not_authenticated"},
		{name: "expired token", header: "Bearer old", serviceErr: service.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantKind: "token_expired"},
		{name: "invalid token", header: "Bearer forged", serviceErr: service.ErrTokenInvalid, wantStatus: http.StatusUnauthorized, wantKind: "token_invalid"},
		{name: "inactive user", header: "Bearer good", serviceErr: service.ErrInactiveUser, wantStatus: http.StatusForbidden, wantKind: "inactive_user"},
		{name: "deleted user", header: "Bearer good", serviceErr: service.ErrUserNotFound, wantStatus: http.StatusNotFound, wantKind: "user_not_found"},
		{name: "store down", header: "Bearer good", serviceErr: service.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable, wantKind: "store_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{
				currentUserFn: func(context.Context, string) (models.User, error) {
					if tt.serviceErr != nil {
						return models.User{}, tt.serviceErr
					}
					return regularUser, nil
				},
			}
			h := newTestHandler(t, auth, nil)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, decodeBody[models.ErrorResponse](t, rr).Error)
			}
		})
	}
}

func TestAuth_UserInContext(t *testing.T) {
	var tokenSeen string
	auth := &fakeAuthService{
		currentUserFn: func(_ context.Context, token string) (models.User, error) {
			tokenSeen = token
			return regularUser, nil
		},
	}
	h := newTestHandler(t, auth, nil)

	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetUserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token-value")
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "token-value", tokenSeen)
	require.NotNil(t, got)
	assert.Equal(t, regularUser.ID, got.ID)

	_, ok := utils.GetUserFromContext(req.Context())
	assert.False(t, ok, "original request must not be mutated")
}

func TestRequireSuperuser(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		wantStatus int
	}{
		{name: "superuser", user: &superUser, wantStatus: http.StatusOK},
		{name: "regular user", user: &regularUser, wantStatus: http.StatusForbidden},
		{name: "inactive superuser", user: &models.User{IsSuperuser: true}, wantStatus: http.StatusForbidden},
		{name: "no user in context", user: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil, nil)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(utils.WithUser(req.Context(), tt.user))
			}
			rr := httptest.NewRecorder()
			h.requireSuperuser(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	_, err := currentUser(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, errors.Is(err, ErrEmptyAuthorizationHeader))
}
