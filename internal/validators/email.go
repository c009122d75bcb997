// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"net/mail"
	"strings"

	"golang.org/x/text/cases"
)

// maxEmailLength is the longest address accepted (RFC 5321 path limit).
const maxEmailLength = 254

var emailFolder = cases.Fold()

// NormalizeEmail trims and Unicode case-folds email so that addresses which
// differ only in letter case map to the same stored value.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a bare addr-spec ("user@example.com"):
// no display name, no angle brackets, a dotted domain, within length limits.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return ErrInvalidEmail
	}

	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrInvalidEmail
	}

	return nil
}
