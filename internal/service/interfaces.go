// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages credentials and the lifecycle of the tokens issued
// for them.
type AuthService interface {
	// Register creates an active, non-superuser account.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Authenticate exchanges an email and password for a token pair.
	// Unknown emails and wrong passwords fail identically with
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (models.TokenPair, error)

	// VerifyToken checks the signature, issuer, type and expiry of an access
	// token without touching the store.
	VerifyToken(token string) (models.Claims, error)

	// CurrentUser resolves a bearer access token to an active user.
	CurrentUser(ctx context.Context, token string) (models.User, error)

	// Refresh rotates a refresh token: the presented token is consumed and a
	// new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout revokes a refresh token. Repeated calls succeed.
	Logout(ctx context.Context, refreshToken string) error

	// Authorize reports whether user holds role.
	Authorize(user models.User, role models.Role) error

	// RequestPasswordReset mails a reset link to the owner of email. It
	// returns nil whether or not such a user exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// ConfirmPasswordReset replaces the password of the token's owner and
	// consumes the token.
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// UserService manages user profiles and administrative user operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	// ListUsers returns a page of users and the total count. A zero limit
	// selects the default page size.
	ListUsers(ctx context.Context, skip, limit uint64) ([]models.User, int64, error)
	CreateUser(ctx context.Context, req models.AdminCreateUserRequest) (models.User, error)
	UpdateMe(ctx context.Context, id uuid.UUID, req models.UpdateMeRequest) (models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, req models.UpdatePasswordRequest) error
	UpdateUser(ctx context.Context, id uuid.UUID, req models.AdminUpdateUserRequest) (models.User, error)
	// DeactivateUser marks the user inactive and revokes its refresh tokens.
	// Actors cannot deactivate themselves.
	DeactivateUser(ctx context.Context, actorID, id uuid.UUID) error
	// EnsureSuperuser creates a superuser with email unless a user with that
	// email already exists.
	EnsureSuperuser(ctx context.Context, email, password string) error
}

// AppInfoService exposes build and liveness information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	HealthCheck(ctx context.Context) error
}

// MailQueue accepts outgoing mail for asynchronous delivery. Enqueue must
// not block.
type MailQueue interface {
	Enqueue(email models.Email) error
}
