// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches the store: email
// syntax, password policy and the fields of admin and self-service updates.
// Services hold a [Validator] and call it with the request and, optionally,
// the names of the fields to check.
package validators

import "context"

// Validator validates a request value. When field names are given only those
// fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
