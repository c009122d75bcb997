// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testSignKey = "0123456789abcdef0123456789abcdef"
	testIssuer  = "test-issuer"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestIssueJWT_Success(t *testing.T) {
	userID := uuid.New()

	token, err := IssueJWT(userID, models.TokenTypeAccess, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Claims.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, token.Claims.Issuer)
	}
	if token.Claims.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, token.Claims.Subject)
	}
	if token.Claims.Type != models.TokenTypeAccess {
		t.Errorf("expected type access, got %s", token.Claims.Type)
	}
	if token.Claims.ID == "" {
		t.Error("expected non-empty jti")
	}
	if !token.ExpiresAt().Equal(testNow.Add(time.Hour)) {
		t.Errorf("unexpected expiry %v", token.ExpiresAt())
	}
}

func TestIssueJWT_UniqueIDs(t *testing.T) {
	userID := uuid.New()

	a, err := IssueJWT(userID, models.TokenTypeRefresh, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}
	b, err := IssueJWT(userID, models.TokenTypeRefresh, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}

	if a.Claims.ID == b.Claims.ID {
		t.Error("expected distinct jti for tokens issued at the same instant")
	}
	if a.SignedString == b.SignedString {
		t.Error("expected distinct token strings")
	}
}

func TestIssueJWT_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		userID    uuid.UUID
		tokenType models.TokenType
		ttl       time.Duration
		key       string
		issuer    string
	}{
		{"nil user", uuid.Nil, models.TokenTypeAccess, time.Hour, testSignKey, testIssuer},
		{"empty type", uuid.New(), "", time.Hour, testSignKey, testIssuer},
		{"zero ttl", uuid.New(), models.TokenTypeAccess, 0, testSignKey, testIssuer},
		{"empty key", uuid.New(), models.TokenTypeAccess, time.Hour, "", testIssuer},
		{"empty issuer", uuid.New(), models.TokenTypeAccess, time.Hour, testSignKey, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IssueJWT(tt.userID, tt.tokenType, tt.ttl, tt.key, tt.issuer, testNow)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestVerifyJWT_Success(t *testing.T) {
	userID := uuid.New()
	token, err := IssueJWT(userID, models.TokenTypeAccess, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := VerifyJWT(token.SignedString, testSignKey, testIssuer, models.TokenTypeAccess, testNow.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, err := claims.UserID()
	if err != nil {
		t.Fatal(err)
	}
	if got != userID {
		t.Errorf("expected user %s, got %s", userID, got)
	}
	if claims.ID != token.Claims.ID {
		t.Errorf("expected jti %s, got %s", token.Claims.ID, claims.ID)
	}
}

func TestVerifyJWT_Expired(t *testing.T) {
	token, err := IssueJWT(uuid.New(), models.TokenTypeAccess, time.Minute, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}

	_, err = VerifyJWT(token.SignedString, testSignKey, testIssuer, models.TokenTypeAccess, testNow.Add(2*time.Minute))
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got: %v", err)
	}
	if errors.Is(err, ErrTokenInvalid) {
		t.Error("expired token must not be reported as invalid")
	}
}

func TestVerifyJWT_ExpiredWithBadSignature(t *testing.T) {
	token, err := IssueJWT(uuid.New(), models.TokenTypeAccess, time.Minute, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}

	_, err = VerifyJWT(token.SignedString, "another-key-another-key-another-key", testIssuer, models.TokenTypeAccess, testNow.Add(time.Hour))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got: %v", err)
	}
}

func TestVerifyJWT_Invalid(t *testing.T) {
	userID := uuid.New()
	access, err := IssueJWT(userID, models.TokenTypeAccess, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := IssueJWT(userID, models.TokenTypeRefresh, time.Hour, testSignKey, testIssuer, testNow)
	if err != nil {
		t.Fatal(err)
	}

	dot := strings.LastIndex(access.SignedString, ".")
	replacement := "A"
	if access.SignedString[dot+1] == 'A' {
		replacement = "B"
	}
	tampered := access.SignedString[:dot+1] + replacement + access.SignedString[dot+2:]

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, access.Claims)
	noneString, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
			ID:        uuid.NewString(),
		},
		Type: models.TokenTypeAccess,
	})
	badSubjectString, err := badSubject.SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatal(err)
	}

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  testIssuer,
			Subject: userID.String(),
			ID:      uuid.NewString(),
		},
		Type: models.TokenTypeAccess,
	})
	noExpiryString, err := noExpiry.SignedString([]byte(testSignKey))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
		typ    models.TokenType
	}{
		{"malformed", "not.a.jwt", testSignKey, testIssuer, models.TokenTypeAccess},
		{"empty", "", testSignKey, testIssuer, models.TokenTypeAccess},
		{"wrong key", access.SignedString, strings.Repeat("k", 32), testIssuer, models.TokenTypeAccess},
		{"tampered signature", tampered, testSignKey, testIssuer, models.TokenTypeAccess},
		{"wrong issuer", access.SignedString, testSignKey, "someone-else", models.TokenTypeAccess},
		{"refresh used as access", refresh.SignedString, testSignKey, testIssuer, models.TokenTypeAccess},
		{"access used as reset", access.SignedString, testSignKey, testIssuer, models.TokenTypeReset},
		{"none algorithm", noneString, testSignKey, testIssuer, models.TokenTypeAccess},
		{"non uuid subject", badSubjectString, testSignKey, testIssuer, models.TokenTypeAccess},
		{"missing expiry", noExpiryString, testSignKey, testIssuer, models.TokenTypeAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyJWT(tt.token, tt.key, tt.issuer, tt.typ, testNow)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("expected ErrTokenInvalid, got: %v", err)
			}
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc", "abc", false},
		{"  Bearer   abc  ", "abc", false},
		{"Basic abc", "", true},
		{"Bearer", "", true},
		{"", "", true},
		{"Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
