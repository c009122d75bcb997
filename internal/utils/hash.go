// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of value.
//
// It is used to derive the lookup key of persisted refresh and password
// reset tokens from their jti claim, so a leaked database row cannot be
// turned back into a usable token id.
//
// Example usage:
//
//	hash := utils.HashToken(claims.ID)
func HashToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
