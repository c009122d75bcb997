// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinPasswordLength is the minimal number of characters in a password.
	MinPasswordLength = 8
	// MaxPasswordLength bounds the hashing cost of a single request.
	MaxPasswordLength = 128
)

// ValidatePassword enforces the password policy: between MinPasswordLength
// and MaxPasswordLength characters, valid UTF-8 and not only whitespace.
// Every violation wraps ErrWeakPassword.
func ValidatePassword(password string) error {
	if !utf8.ValidString(password) {
		return fmt.Errorf("%w: password is not valid UTF-8", ErrWeakPassword)
	}

	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d characters", ErrWeakPassword, MaxPasswordLength)
	}

	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password must not be blank", ErrWeakPassword)
	}

	return nil
}
