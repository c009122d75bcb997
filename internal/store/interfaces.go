// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts. Emails are expected to be folded
// by the caller; lookups compare them verbatim.
type UserRepository interface {
	// CreateUser inserts user and returns the stored record.
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns ErrNoUserWasFound when no user has email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns ErrNoUserWasFound when no user has id.
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)

	// ListUsers returns one page of users ordered by creation time together
	// with the total number of users.
	ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, int64, error)

	// UpdateUser applies the non-nil fields of update and returns the
	// resulting record. Returns ErrNoUserWasFound or ErrEmailAlreadyExists.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
}

// RefreshTokenRepository persists hashes of issued refresh tokens.
type RefreshTokenRepository interface {
	// SaveRefreshToken stores a newly issued refresh token.
	SaveRefreshToken(ctx context.Context, token models.RefreshToken) error

	// ConsumeRefreshToken atomically deletes the unexpired token with
	// tokenHash and returns it. Returns ErrTokenNotFound when there is none.
	ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (models.RefreshToken, error)

	// DeleteRefreshToken removes the token with tokenHash. Missing tokens
	// are not an error.
	DeleteRefreshToken(ctx context.Context, tokenHash string) error

	// DeleteUserRefreshTokens revokes every refresh token of userID.
	DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens purges tokens expired at now and returns
	// the number of removed rows.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// PasswordResetRepository persists the single active password reset token
// of each user.
type PasswordResetRepository interface {
	// SaveResetToken stores token, replacing any previous token of the user.
	SaveResetToken(ctx context.Context, token models.PasswordResetToken) error

	// ResetPassword, in one transaction, marks the unused and unexpired reset
	// token of userID matching tokenHash as used, sets the new password hash
	// and revokes the user's refresh tokens. Returns ErrTokenNotFound when no
	// token could be consumed; nothing is changed in that case.
	ResetPassword(ctx context.Context, userID uuid.UUID, tokenHash, passwordHash string, now time.Time) error

	// DeleteExpiredResetTokens purges tokens that expired or were used
	// before now and returns the number of removed rows.
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ErrorClassificator maps driver errors of a specific database onto the
// categories the repositories act upon.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
