// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fullstack-auth/internal/app"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const (
	kindInternal           = "internal_error"
	bearerChallengeHeader  = "WWW-Authenticate"
	bearerChallengeMessage = "Bearer"
)

// errorStatus is the transport representation of a sentinel error.
type errorStatus struct {
	status int
	kind   string

	// detailed errors expose the full wrapped message. Other errors only
	// expose the sentinel's own text.
	detailed bool
}

var errorStatusMap = map[error]errorStatus{
	service.ErrDuplicateEmail:      {http.StatusConflict, "duplicate_email", false},
	service.ErrWeakPassword:        {http.StatusUnprocessableEntity, "weak_password", true},
	service.ErrInvalidEmail:        {http.StatusUnprocessableEntity, "invalid_email", false},
	service.ErrInvalidCredentials:  {http.StatusUnauthorized, "invalid_credentials", false},
	service.ErrTokenExpired:        {http.StatusUnauthorized, "token_expired", false},
	service.ErrTokenInvalid:        {http.StatusUnauthorized, "token_invalid", false},
	service.ErrForbidden:           {http.StatusForbidden, "forbidden", false},
	service.ErrInactiveUser:        {http.StatusForbidden, "inactive_user", false},
	service.ErrUserNotFound:        {http.StatusNotFound, "user_not_found", false},
	service.ErrInvalidDataProvided: {http.StatusBadRequest, "invalid_data", true},
	service.ErrStoreUnavailable:    {http.StatusServiceUnavailable, "store_unavailable", false},

	ErrEmptyAuthorizationHeader:   {http.StatusUnauthorized, "not_authenticated", false},
	ErrInvalidAuthorizationHeader: {http.StatusUnauthorized, "not_authenticated", false},
	ErrTooManyRequests:            {http.StatusTooManyRequests, "rate_limited", false},
	ErrInvalidUserID:              {http.StatusBadRequest, "invalid_data", false},
	ErrRouteNotFound:              {http.StatusNotFound, "not_found", false},
	ErrBadMethod:                  {http.StatusMethodNotAllowed, "method_not_allowed", false},
}

// statusFromError maps err to its HTTP status and response body. Unknown
// errors become a 500 with a generic message.
func statusFromError(err error) (int, models.ErrorResponse) {
	for target, mapped := range errorStatusMap {
		if !errors.Is(err, target) {
			continue
		}

		message := target.Error()
		if mapped.detailed {
			message = err.Error()
		}
		return mapped.status, models.ErrorResponse{Error: mapped.kind, Message: message}
	}

	return http.StatusInternalServerError, models.ErrorResponse{Error: kindInternal, Message: app.MsgInternalServerError}
}

// writeError logs err with the request logger and writes the mapped error
// response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set(bearerChallengeHeader, bearerChallengeMessage)
	}

	utils.WriteJSON(w, body, status)
}
