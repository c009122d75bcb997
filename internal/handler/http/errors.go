// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("not authenticated")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrTooManyRequests is returned by the rate limiter.
	ErrTooManyRequests = errors.New("too many requests, try again later")

	ErrInvalidUserID = errors.New("invalid user id")
	ErrRouteNotFound = errors.New("not found")
	ErrBadMethod     = errors.New("method not allowed")
)
