// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fullstack-auth/internal/store"
	"github.com/MKhiriev/go-fullstack-auth/internal/validators"
)

// Errors returned by the services. The transport layer maps each of them to a
// status code and a stable error kind; anything else is an internal error.
var (
	ErrDuplicateEmail      = errors.New("the user with this email already exists")
	ErrWeakPassword        = errors.New("password does not satisfy the password policy")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidCredentials  = errors.New("incorrect email or password")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenInvalid        = errors.New("could not validate credentials")
	ErrForbidden           = errors.New("the user doesn't have enough privileges")
	ErrInactiveUser        = errors.New("inactive user")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrStoreUnavailable    = errors.New("service is temporarily unavailable")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// storeError translates repository errors into service errors. Unknown
// errors are returned unchanged.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrTokenNotFound):
		return ErrTokenInvalid
	case errors.Is(err, store.ErrStoreUnavailable):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return err
	}
}

// validationError translates validator errors into service errors.
func validationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validators.ErrInvalidEmail):
		return ErrInvalidEmail
	case errors.Is(err, validators.ErrWeakPassword):
		return fmt.Errorf("%w: %w", ErrWeakPassword, err)
	case errors.Is(err, validators.ErrEmptyToken):
		return ErrTokenInvalid
	default:
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
}
