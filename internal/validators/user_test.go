// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-fullstack-auth/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	}
}

// ---------------------------------------------------------------------------
// Email
// ---------------------------------------------------------------------------

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"Alice.Smith+tag@sub.example.org", true},
		{"  alice@example.com  ", true},
		{"", false},
		{"alice", false},
		{"alice@", false},
		{"@example.com", false},
		{"alice@localhost", false},
		{"alice@example.", false},
		{"Alice <alice@example.com>", false},
		{"<alice@example.com>", false},
		{"a@b@example.com", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, NormalizeEmail("STRASSE@example.com"), NormalizeEmail("strasse@EXAMPLE.com"))
	assert.Equal(t, NormalizeEmail("ΣΊΣΥΦΟΣ@example.com"), NormalizeEmail("σίσυφος@example.com"))
}

// ---------------------------------------------------------------------------
// Password
// ---------------------------------------------------------------------------

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"minimal length", "12345678", true},
		{"multibyte counted as runes", "пароль12", true},
		{"max length", strings.Repeat("x", MaxPasswordLength), true},
		{"too short", "1234567", false},
		{"empty", "", false},
		{"too long", strings.Repeat("x", MaxPasswordLength+1), false},
		{"blank", "          ", false},
		{"invalid utf8", "abcdefg\xff", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// UserValidator
// ---------------------------------------------------------------------------

func TestNewUserValidator(t *testing.T) {
	require.NotNil(t, NewUserValidator())
}

func TestUserValidator_Dispatch(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("RegisterRequest value and pointer", func(t *testing.T) {
		r := validRegisterRequest()
		require.NoError(t, v.Validate(ctx, r))
		require.NoError(t, v.Validate(ctx, &r))
	})

	t.Run("AdminCreateUserRequest", func(t *testing.T) {
		r := models.AdminCreateUserRequest{Email: "bob@example.com", Password: "12345678", IsSuperuser: true}
		require.NoError(t, v.Validate(ctx, r))
		require.NoError(t, v.Validate(ctx, &r))

		r.Password = "short"
		require.ErrorIs(t, v.Validate(ctx, &r), ErrWeakPassword)
	})
}

func TestUserValidator_RegisterRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		fields  []string
		wantErr error
	}{
		{"valid", func(r *models.RegisterRequest) {}, nil, nil},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "nope" }, nil, ErrInvalidEmail},
		{"weak password", func(r *models.RegisterRequest) { r.Password = "123" }, nil, ErrWeakPassword},
		{"long name", func(r *models.RegisterRequest) { r.FullName = strings.Repeat("n", 256) }, nil, ErrFullNameTooLong},
		{"scoped to email skips password", func(r *models.RegisterRequest) { r.Password = "123" }, []string{FieldEmail}, nil},
		{"unknown field", func(r *models.RegisterRequest) {}, []string{"nickname"}, ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegisterRequest()
			tt.mutate(&r)

			err := v.Validate(ctx, r, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_UpdateMeRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.UpdateMeRequest{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.UpdateMeRequest{FullName: ptr("New Name")}))
	assert.NoError(t, v.Validate(ctx, &models.UpdateMeRequest{Email: ptr("new@example.com")}))
	assert.ErrorIs(t, v.Validate(ctx, models.UpdateMeRequest{Email: ptr("bad")}), ErrInvalidEmail)
}

func TestUserValidator_AdminUpdateUserRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.AdminUpdateUserRequest{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.AdminUpdateUserRequest{IsActive: ptr(false)}))
	assert.NoError(t, v.Validate(ctx, &models.AdminUpdateUserRequest{IsSuperuser: ptr(true)}))
	assert.ErrorIs(t, v.Validate(ctx, models.AdminUpdateUserRequest{Password: ptr("short")}), ErrWeakPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.AdminUpdateUserRequest{IsActive: ptr(true), Email: ptr("x")}), ErrInvalidEmail)
}

func TestUserValidator_PasswordRequests(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.UpdatePasswordRequest{CurrentPassword: "whatever", NewPassword: "brand-new-pass"}))
	assert.ErrorIs(t, v.Validate(ctx, &models.UpdatePasswordRequest{NewPassword: "short"}), ErrWeakPassword)

	assert.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", NewPassword: "brand-new-pass"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{NewPassword: "brand-new-pass"}), ErrEmptyToken)
	assert.ErrorIs(t, v.Validate(ctx, &models.ResetPasswordRequest{Token: "t", NewPassword: "short"}), ErrWeakPassword)
	assert.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{NewPassword: "brand-new-pass"}, FieldNewPassword))
}
