// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const apiPrefix = "/api/v1"

type httpAuthAPI struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthAPI constructs an HTTP/REST implementation of [AuthAPI].
// It normalises and validates address and configures the underlying HTTP
// client with the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAuthAPI(address string, timeout time.Duration, logger *logger.Logger) (AuthAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpAuthAPI{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [AuthAPI]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAuthAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [AuthAPI].
func (h *httpAuthAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Signup implements [AuthAPI]. It POSTs req to /api/v1/users/signup.
func (h *httpAuthAPI) Signup(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post(apiPrefix + "/users/signup")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [AuthAPI]. Credentials are sent as an OAuth2 password
// form. The access token is taken from the Authorization response header.
func (h *httpAuthAPI) Login(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var tokens models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(&tokens).
		Post(apiPrefix + "/login/access-token")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return tokens, nil
}

// Refresh implements [AuthAPI].
func (h *httpAuthAPI) Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error) {
	var tokens models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&tokens).
		Post(apiPrefix + "/login/refresh")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	h.SetToken(tokens.AccessToken)
	return tokens, nil
}

// Logout implements [AuthAPI]. The stored access token is dropped.
func (h *httpAuthAPI) Logout(ctx context.Context, refreshToken string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		Post(apiPrefix + "/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// Me implements [AuthAPI]. Returns [ErrNoToken] when no access token is set.
func (h *httpAuthAPI) Me(ctx context.Context) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	resp, err := req.SetResult(&user).Get(apiPrefix + "/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// RecoverPassword implements [AuthAPI].
func (h *httpAuthAPI) RecoverPassword(ctx context.Context, email string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("email", email).
		Post(apiPrefix + "/password-recovery/{email}")
	if err != nil {
		return fmt.Errorf("password recovery request: %w", err)
	}

	return mapHTTPError(resp)
}

// ResetPassword implements [AuthAPI].
func (h *httpAuthAPI) ResetPassword(ctx context.Context, token, newPassword string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResetPasswordRequest{Token: token, NewPassword: newPassword}).
		Post(apiPrefix + "/reset-password/")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [AuthAPI].
func (h *httpAuthAPI) Version(ctx context.Context) (string, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return info.Version, nil
}

func (h *httpAuthAPI) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
