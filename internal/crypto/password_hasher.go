// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidHash is returned when a stored hash is not a PHC argon2id string.
	ErrInvalidHash = errors.New("encoded hash is not in the correct format")
	// ErrIncompatibleVersion is returned for hashes made by another argon2 version.
	ErrIncompatibleVersion = errors.New("incompatible version of argon2")
)

// Params are the Argon2id tuning parameters.
type Params struct {
	// Time is the number of passes over memory.
	Time uint32
	// Memory is the memory cost in KiB.
	Memory uint32
	// Threads is the degree of parallelism.
	Threads uint8
	// KeyLen is the length of the derived key in bytes.
	KeyLen uint32
	// SaltLen is the length of the random salt in bytes.
	SaltLen uint32
}

// DefaultParams returns the Argon2id parameters recommended by OWASP for
// password storage:
//   - time cost:   2 iterations
//   - memory cost: 19 MiB
//   - parallelism: 1 thread
//   - key length:  32 bytes (256 bits)
//   - salt length: 16 bytes (128 bits)
func DefaultParams() Params {
	return Params{
		Time:    2,
		Memory:  19 * 1024, // 19 MiB
		Threads: 1,
		KeyLen:  32, // 256 bits
		SaltLen: 16,
	}
}

// argon2Hasher is the private implementation of [PasswordHasher].
type argon2Hasher struct {
	params    Params
	dummyHash string
}

// NewPasswordHasher constructs a [PasswordHasher] that hashes new passwords
// with params. Verification always uses the parameters encoded in the stored
// hash, so changing params does not invalidate existing passwords.
func NewPasswordHasher(params Params) (PasswordHasher, error) {
	h := &argon2Hasher{params: params}

	dummy := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, dummy); err != nil {
		return nil, fmt.Errorf("error generating dummy password: %w", err)
	}

	dummyHash, err := h.hash(string(dummy))
	if err != nil {
		return nil, err
	}
	h.dummyHash = dummyHash

	return h, nil
}

// Hash implements [PasswordHasher].
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		hash string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		encoded, err := h.hash(password)
		done <- result{hash: encoded, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.hash, res.err
	}
}

// Verify implements [PasswordHasher].
func (h *argon2Hasher) Verify(ctx context.Context, encodedHash, password string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	if err = ctx.Err(); err != nil {
		return false, err
	}

	done := make(chan bool, 1)
	go func() {
		otherKey := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLen)
		done <- subtle.ConstantTimeCompare(key, otherKey) == 1
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case match := <-done:
		return match, nil
	}
}

// DummyHash implements [PasswordHasher].
func (h *argon2Hasher) DummyHash() string {
	return h.dummyHash
}

func (h *argon2Hasher) hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return encodeHash(h.params, salt, key), nil
}

// encodeHash renders the PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<key>
//
// Salt and key are base64 without padding.
func encodeHash(p Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(encodedHash string) (Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return Params{}, nil, nil, ErrIncompatibleVersion
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}
	p.SaltLen = uint32(len(salt))

	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}
