// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound integrations of the application: the
// mail senders used for password recovery and the HTTP client of the REST
// API used by the command-line client.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-fullstack-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_sender_mock.go -package=mock

// MailSender delivers a single email. Implementations must honour ctx.
type MailSender interface {
	Send(ctx context.Context, email models.Email) error
}

// AuthAPI is a client of the authentication REST API. Implementations keep
// the access and refresh tokens of the last successful login and attach the
// access token to authenticated requests.
type AuthAPI interface {
	// SetToken stores the bearer access token used for authenticated calls.
	SetToken(token string)

	// Token returns the stored bearer access token.
	Token() string

	// Signup registers a new account.
	Signup(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login exchanges credentials for a token pair and stores the access token.
	Login(ctx context.Context, email, password string) (models.TokenResponse, error)

	// Refresh rotates refreshToken and stores the new access token.
	Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error)

	// Logout revokes refreshToken.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the user owning the stored access token.
	Me(ctx context.Context) (models.User, error)

	// RecoverPassword asks the server to mail a reset link to email.
	RecoverPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using a token from the reset link.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// Version returns the version of the server.
	Version(ctx context.Context) (string, error)
}
