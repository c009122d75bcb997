// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode/utf8"

	"github.com/MKhiriev/go-fullstack-auth/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldEmail targets the login email of a request.
	FieldEmail = "email"

	// FieldPassword targets the password of a registration or admin request.
	FieldPassword = "password"

	// FieldNewPassword targets the replacement password of a reset or change request.
	FieldNewPassword = "new_password"

	// FieldFullName targets the display name.
	FieldFullName = "full_name"

	// FieldToken targets the reset token of a reset request.
	FieldToken = "token"

	// FieldAnyUpdate requires a partial update to change at least one field.
	FieldAnyUpdate = "any_update"
)

// maxFullNameLength bounds the display name in characters.
const maxFullNameLength = 255

// UserValidator implements the Validator interface for all requests that
// create or change user accounts and credentials.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the request type. Without explicit fields every rule
// applicable to the type is checked; the first violation is returned.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.AdminCreateUserRequest:
		return v.validateRegisterRequest(models.RegisterRequest{
			Email: value.Email, Password: value.Password, FullName: value.FullName,
		}, fields...)
	case *models.AdminCreateUserRequest:
		return v.Validate(ctx, *value, fields...)

	case models.UpdateMeRequest:
		return v.validateUpdate(value.Email, nil, value.FullName, fields...)
	case *models.UpdateMeRequest:
		return v.validateUpdate(value.Email, nil, value.FullName, fields...)

	case models.AdminUpdateUserRequest:
		return v.validateAdminUpdate(value, fields...)
	case *models.AdminUpdateUserRequest:
		return v.validateAdminUpdate(*value, fields...)

	case models.UpdatePasswordRequest:
		return v.validateNewPassword(value.NewPassword, "", fields...)
	case *models.UpdatePasswordRequest:
		return v.validateNewPassword(value.NewPassword, "", fields...)

	case models.ResetPasswordRequest:
		return v.validateNewPassword(value.NewPassword, value.Token, withDefault(fields, FieldToken, FieldNewPassword)...)
	case *models.ResetPasswordRequest:
		return v.validateNewPassword(value.NewPassword, value.Token, withDefault(fields, FieldToken, FieldNewPassword)...)

	default:
		return ErrUnsupportedType
	}
}

func withDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func (v *UserValidator) validateRegisterRequest(request models.RegisterRequest, fields ...string) error {
	for _, f := range withDefault(fields, FieldEmail, FieldPassword, FieldFullName) {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(request.Email); err != nil {
				return err
			}
		case FieldPassword:
			if err := ValidatePassword(request.Password); err != nil {
				return err
			}
		case FieldFullName:
			if utf8.RuneCountInString(request.FullName) > maxFullNameLength {
				return ErrFullNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUpdate(email, password, fullName *string, fields ...string) error {
	for _, f := range withDefault(fields, FieldAnyUpdate, FieldEmail, FieldPassword, FieldFullName) {
		switch f {
		case FieldAnyUpdate:
			if email == nil && password == nil && fullName == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldEmail:
			if email != nil {
				if err := ValidateEmail(*email); err != nil {
					return err
				}
			}
		case FieldPassword:
			if password != nil {
				if err := ValidatePassword(*password); err != nil {
					return err
				}
			}
		case FieldFullName:
			if fullName != nil && utf8.RuneCountInString(*fullName) > maxFullNameLength {
				return ErrFullNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateAdminUpdate(request models.AdminUpdateUserRequest, fields ...string) error {
	if len(fields) == 0 && request.IsActive == nil && request.IsSuperuser == nil {
		fields = []string{FieldAnyUpdate, FieldEmail, FieldPassword, FieldFullName}
	} else if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldFullName}
	}

	return v.validateUpdate(request.Email, request.Password, request.FullName, fields...)
}

func (v *UserValidator) validateNewPassword(newPassword, token string, fields ...string) error {
	for _, f := range withDefault(fields, FieldNewPassword) {
		switch f {
		case FieldNewPassword:
			if err := ValidatePassword(newPassword); err != nil {
				return err
			}
		case FieldToken:
			if token == "" {
				return ErrEmptyToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
