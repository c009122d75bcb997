// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing argon2id
// hashes and checks passwords against them.
//
// Hash and Verify are CPU and memory heavy. Both honour ctx: when ctx is done
// before the computation finishes they return ctx.Err() and the result is
// discarded.
type PasswordHasher interface {
	// Hash derives a new PHC-formatted argon2id hash of password using a fresh
	// random salt.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches encodedHash. The comparison
	// of derived keys is constant-time. A malformed hash returns ErrInvalidHash.
	Verify(ctx context.Context, encodedHash, password string) (bool, error)

	// DummyHash returns a valid hash of an unknown random password. Verifying
	// against it costs the same as verifying a real user's hash, which keeps
	// failed logins for unknown emails indistinguishable by timing.
	DummyHash() string
}
