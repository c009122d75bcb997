// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/models"
)

const (
	usersTable               = "users"
	refreshTokensTable       = "refresh_tokens"
	passwordResetTokensTable = "password_reset_tokens"
)

// userColumns is the column order scanned by scanUser.
var userColumns = []string{
	"id", "email", "full_name", "password_hash", "is_active", "is_superuser", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (db *DB) buildInsertUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.FullName, user.PasswordHash, user.IsActive, user.IsSuperuser, user.CreatedAt, user.UpdatedAt).
		ToSql()
}

func (db *DB) buildSelectUserQuery(where sq.Eq) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func (db *DB) buildListUsersQuery(offset, limit uint64) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(usersTable).
		OrderBy("created_at", "id").
		Offset(offset).
		Limit(limit).
		ToSql()
}

func (db *DB) buildCountUsersQuery() (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(usersTable).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of update.
func (db *DB) buildUpdateUserQuery(update models.UserUpdate) (string, []any, error) {
	query := db.builder.
		Update(usersTable).
		Set("updated_at", update.UpdatedAt)

	if update.Email != nil {
		query = query.Set("email", *update.Email)
	}
	if update.FullName != nil {
		query = query.Set("full_name", *update.FullName)
	}
	if update.PasswordHash != nil {
		query = query.Set("password_hash", *update.PasswordHash)
	}
	if update.IsActive != nil {
		query = query.Set("is_active", *update.IsActive)
	}
	if update.IsSuperuser != nil {
		query = query.Set("is_superuser", *update.IsSuperuser)
	}

	return query.
		Where(sq.Eq{"id": update.ID}).
		ToSql()
}

func (db *DB) buildInsertRefreshTokenQuery(token models.RefreshToken) (string, []any, error) {
	return db.builder.
		Insert(refreshTokensTable).
		Columns("token_hash", "user_id", "expires_at", "created_at").
		Values(token.TokenHash, token.UserID, token.ExpiresAt, token.CreatedAt).
		ToSql()
}

func (db *DB) buildConsumeRefreshTokenQuery(tokenHash string, now time.Time) (string, []any, error) {
	return db.builder.
		Delete(refreshTokensTable).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING user_id").
		ToSql()
}

func (db *DB) buildDeleteRefreshTokensQuery(where sq.Sqlizer) (string, []any, error) {
	return db.builder.
		Delete(refreshTokensTable).
		Where(where).
		ToSql()
}

// buildUpsertResetTokenQuery replaces the previous token of the user, so at
// most one reset token per user exists at any time.
func (db *DB) buildUpsertResetTokenQuery(token models.PasswordResetToken) (string, []any, error) {
	return db.builder.
		Insert(passwordResetTokensTable).
		Columns("user_id", "token_hash", "expires_at", "used_at", "created_at").
		Values(token.UserID, token.TokenHash, token.ExpiresAt, nil, token.CreatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET " +
			"token_hash = EXCLUDED.token_hash, " +
			"expires_at = EXCLUDED.expires_at, " +
			"used_at = NULL, " +
			"created_at = EXCLUDED.created_at").
		ToSql()
}

func (db *DB) buildConsumeResetTokenQuery(userID uuid.UUID, tokenHash string, now time.Time) (string, []any, error) {
	return db.builder.
		Update(passwordResetTokensTable).
		Set("used_at", now).
		Where(sq.Eq{"user_id": userID, "token_hash": tokenHash, "used_at": nil}).
		Where(sq.Gt{"expires_at": now}).
		ToSql()
}

func (db *DB) buildDeleteExpiredResetTokensQuery(now time.Time) (string, []any, error) {
	return db.builder.
		Delete(passwordResetTokensTable).
		Where(sq.Or{
			sq.LtOrEq{"expires_at": now},
			sq.NotEq{"used_at": nil},
		}).
		ToSql()
}
