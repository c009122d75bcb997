// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes the purposes a signed token can be issued for.
// A token of one type is never accepted where another type is expected.
type TokenType string

const (
	// TokenTypeAccess marks short-lived bearer tokens for API calls.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh marks long-lived tokens exchanged for a new pair.
	TokenTypeRefresh TokenType = "refresh"
	// TokenTypeReset marks single-use password reset tokens.
	TokenTypeReset TokenType = "reset"
)

// Claims is the JWT claim set issued by the application.
//
// It embeds [jwt.RegisteredClaims] for the standard claims (sub, iss, iat,
// exp, jti) and adds the token type, so that a refresh or reset token can
// never be replayed as an access token.
type Claims struct {
	jwt.RegisteredClaims

	// Type is the purpose the token was issued for.
	Type TokenType `json:"typ"`
}

// UserID parses the "sub" claim as the user identifier.
func (c Claims) UserID() (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting subject to user ID: %w", err)
	}

	return userID, nil
}

// Token is an issued, signed token together with the claims it carries.
type Token struct {
	// Claims holds the decoded claim set.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// ExpiresAt returns the expiry time of the token, or the zero time when the
// token carries no exp claim.
func (t Token) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  Token
	RefreshToken Token
}

// RefreshToken is the persisted record of an issued refresh token.
// Only the SHA-256 hash of the token id is stored.
type RefreshToken struct {
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// PasswordResetToken is the persisted record of the single active password
// reset token of a user. Issuing a new token replaces the previous record.
type PasswordResetToken struct {
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
