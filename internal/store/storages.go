// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-fullstack-auth/internal/logger"

// Storages groups the repositories sharing one database connection.
type Storages struct {
	UserRepository          UserRepository
	RefreshTokenRepository  RefreshTokenRepository
	PasswordResetRepository PasswordResetRepository
	Pinger                  Pinger
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:          NewUserRepository(db, log),
		RefreshTokenRepository:  NewRefreshTokenRepository(db, log),
		PasswordResetRepository: NewPasswordResetRepository(db, log),
		Pinger:                  db,
	}
}
