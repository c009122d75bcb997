// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-fullstack-auth/internal/app"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantMessage string
	}{
		{"duplicate email", service.ErrDuplicateEmail, http.StatusConflict, "duplicate_email", service.ErrDuplicateEmail.Error()},
		{"weak password keeps detail", fmt.Errorf("%w: at least 8 characters", service.ErrWeakPassword), http.StatusUnprocessableEntity, "weak_password", service.ErrWeakPassword.Error() + ": at least 8 characters"},
		{"invalid email", service.ErrInvalidEmail, http.StatusUnprocessableEntity, "invalid_email", service.ErrInvalidEmail.Error()},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error()},
		{"token expired", service.ErrTokenExpired, http.StatusUnauthorized, "token_expired", service.ErrTokenExpired.Error()},
		{"token invalid", service.ErrTokenInvalid, http.StatusUnauthorized, "token_invalid", service.ErrTokenInvalid.Error()},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden", service.ErrForbidden.Error()},
		{"inactive", service.ErrInactiveUser, http.StatusForbidden, "inactive_user", service.ErrInactiveUser.Error()},
		{"not found", service.ErrUserNotFound, http.StatusNotFound, "user_not_found", service.ErrUserNotFound.Error()},
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest, "invalid_data", service.ErrInvalidDataProvided.Error()},
		{
			"store unavailable hides driver detail",
			fmt.Errorf("%w: %w: dial tcp 10.0.0.1:5432", service.ErrStoreUnavailable, store.ErrStoreUnavailable),
			http.StatusServiceUnavailable, "store_unavailable", service.ErrStoreUnavailable.Error(),
		},
		{"unknown error", errors.New("pq: secret table name"), http.StatusInternalServerError, "internal_error", app.MsgInternalServerError},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests, "rate_limited", ErrTooManyRequests.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := statusFromError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKind, body.Error)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}
