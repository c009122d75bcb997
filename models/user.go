// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, credential data and capability flags.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUIDv7).
	ID uuid.UUID `json:"id"`

	// Email is the unique login identifier. It is always stored case-folded,
	// so lookups by email are case-insensitive.
	Email string `json:"email"`

	// FullName is the display name of the user.
	FullName string `json:"full_name"`

	// PasswordHash stores the argon2id PHC string of the user's password.
	// It is never serialized to JSON.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account may authenticate.
	// Deactivated accounts are kept in the store.
	IsActive bool `json:"is_active"`

	// IsSuperuser grants elevated, administrative authorization.
	IsSuperuser bool `json:"is_superuser"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile or credential change.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasRole reports whether u holds the capability described by role.
// Inactive users hold no role at all.
func (u User) HasRole(role Role) bool {
	if !u.IsActive {
		return false
	}

	switch role {
	case RoleUser:
		return true
	case RoleSuperuser:
		return u.IsSuperuser
	default:
		return false
	}
}

// UserUpdate is a partial update of a user record. Nil fields are left
// untouched by the store.
type UserUpdate struct {
	ID           uuid.UUID
	Email        *string
	FullName     *string
	PasswordHash *string
	IsActive     *bool
	IsSuperuser  *bool
	UpdatedAt    time.Time
}

// IsEmpty reports whether the update changes no column besides UpdatedAt.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.FullName == nil && u.PasswordHash == nil && u.IsActive == nil && u.IsSuperuser == nil
}
