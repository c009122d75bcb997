// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned by VerifyJWT when the token carries a valid
	// signature but its exp claim is in the past.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned by VerifyJWT for every other failure:
	// malformed token, bad signature, wrong issuer, wrong type, bad subject.
	ErrTokenInvalid = errors.New("token is invalid")
)

// IssueJWT creates a signed HMAC-SHA256 JWT of the given type.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus ttl
//   - ID        (jti): a random UUID, unique per token
//   - Type      (typ): access, refresh or reset
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.IssueJWT(userID, models.TokenTypeAccess, 15*time.Minute, key, "auth", time.Now())
func IssueJWT(userID uuid.UUID, tokenType models.TokenType, ttl time.Duration, signKey, issuer string, now time.Time) (models.Token, error) {
	if userID == uuid.Nil || tokenType == "" || ttl <= 0 || signKey == "" || issuer == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Type: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// VerifyJWT validates tokenString and returns its claims. It performs no I/O
// and reads the clock only through now, so it is safe to call from any
// goroutine and deterministic under test.
//
// Validation includes:
//   - HS256 signature verification with signKey (checked before any claim)
//   - exp claim against now; an expired token with a valid signature yields
//     ErrTokenExpired
//   - iss claim against issuer
//   - typ claim against expectedType
//   - sub claim is a UUID and jti is present
//
// Every failure other than expiry yields an error wrapping ErrTokenInvalid.
func VerifyJWT(tokenString, signKey, issuer string, expectedType models.TokenType, now time.Time) (models.Claims, error) {
	var claims models.Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, ErrTokenExpired
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Type != expectedType {
		return models.Claims{}, fmt.Errorf("%w: unexpected token type %q", ErrTokenInvalid, claims.Type)
	}

	if claims.ID == "" {
		return models.Claims{}, fmt.Errorf("%w: missing token id", ErrTokenInvalid)
	}

	if _, err = claims.UserID(); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
