// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
)

type options struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// Option customises a service at construction time.
type Option func(*options)

// WithClock replaces the wall clock used for token issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the generator of new user identifiers.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: utils.NewUUIDGenerator().Generate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// utcNow returns the current time of the configured clock in UTC.
func (o options) utcNow() time.Time {
	return o.now().UTC()
}
