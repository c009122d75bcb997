// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// newTestAPI builds an httpAuthAPI pointed at the test server.
func newTestAPI(t *testing.T, serverURL string) *httpAuthAPI {
	t.Helper()

	a, err := NewHTTPAuthAPI(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return a.(*httpAuthAPI)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: kind, Message: message})
}

// ── Signup ──────────────────────────────────────────────────────────────────

func TestSignup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/signup", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.User{Email: req.Email, FullName: req.FullName, IsActive: true})
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)
	user, err := a.Signup(context.Background(), models.RegisterRequest{Email: "alice@example.com", Password: "correct horse", FullName: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsActive)
}

func TestSignup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "duplicate_email", "the user with this email already exists")
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Signup(context.Background(), models.RegisterRequest{Email: "alice@example.com"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "the user with this email already exists")
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/login/access-token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "correct horse", r.PostForm.Get("password"))

		w.Header().Set("Authorization", "Bearer access-token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "bearer", ExpiresIn: 900})
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)
	tokens, err := a.Login(context.Background(), "alice@example.com", "correct horse")

	require.NoError(t, err)
	assert.Equal(t, "refresh-token", tokens.RefreshToken)
	assert.Equal(t, "access-token", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect email or password")
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)
	_, err := a.Login(context.Background(), "alice@example.com", "wrong")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestLogin_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Login(context.Background(), "alice@example.com", "pass")

	assert.ErrorIs(t, err, ErrTooManyRequests)
}

// ── Refresh / Logout ────────────────────────────────────────────────────────

func TestRefreshAndLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.RefreshToken)

		switch r.URL.Path {
		case "/api/v1/login/refresh":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"})
		case "/api/v1/logout":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)

	tokens, err := a.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", tokens.RefreshToken)
	assert.Equal(t, "access-2", a.Token())

	require.NoError(t, a.Logout(context.Background(), "refresh-1"))
	assert.Empty(t, a.Token())
}

// ── Me ──────────────────────────────────────────────────────────────────────

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users/me", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.User{Email: "alice@example.com"})
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)
	a.SetToken("  access-token ")

	user, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestMe_NoToken(t *testing.T) {
	a := newTestAPI(t, "http://localhost:1")

	_, err := a.Me(context.Background())

	assert.ErrorIs(t, err, ErrNoToken)
}

func TestMe_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusForbidden, "inactive_user", "inactive user")
	}))
	defer srv.Close()

	a := newTestAPI(t, srv.URL)
	a.SetToken("access-token")

	_, err := a.Me(context.Background())

	assert.ErrorIs(t, err, ErrForbidden)
}

// ── Password recovery ───────────────────────────────────────────────────────

func TestRecoverPassword_EscapesEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/password-recovery/alice+test@example.com", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAPI(t, srv.URL).RecoverPassword(context.Background(), "alice+test@example.com"))
}

func TestResetPassword_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reset-password/", r.URL.Path)

		var req models.ResetPasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "reset-token", req.Token)

		writeError(w, http.StatusUnprocessableEntity, "weak_password", "password does not satisfy the password policy")
	}))
	defer srv.Close()

	err := newTestAPI(t, srv.URL).ResetPassword(context.Background(), "reset-token", "short")

	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AppBuildInfo{Version: "1.2.3"})
	}))
	defer srv.Close()

	version, err := newTestAPI(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

// ── mapHTTPError ─────────────────────────────────────────────────────────────

func TestMapHTTPError_PlainBodyAndUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("  short and stout \n"))
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Version(context.Background())

	require.Error(t, err)
	assert.Equal(t, "http 418: short and stout", err.Error())
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
