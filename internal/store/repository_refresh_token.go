// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// refreshTokenRepository is the SQL implementation of [RefreshTokenRepository]
// backed by the "refresh_tokens" table.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository].
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *refreshTokenRepository) SaveRefreshToken(ctx context.Context, token models.RefreshToken) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildInsertRefreshTokenQuery(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.SaveRefreshToken").Msg("error inserting refresh token")
		return r.db.wrapError(err)
	}

	return nil
}

// ConsumeRefreshToken deletes the token in a single statement, so two
// concurrent refreshes with the same token cannot both succeed.
func (r *refreshTokenRepository) ConsumeRefreshToken(ctx context.Context, tokenHash string, now time.Time) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildConsumeRefreshTokenQuery(tokenHash, now)
	if err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	token := models.RefreshToken{TokenHash: tokenHash}
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&token.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrTokenNotFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.ConsumeRefreshToken").Msg("error consuming refresh token")
		return models.RefreshToken{}, r.db.wrapError(err)
	}

	return token, nil
}

func (r *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.delete(ctx, sq.Eq{"token_hash": tokenHash}, "*refreshTokenRepository.DeleteRefreshToken")
	return err
}

func (r *refreshTokenRepository) DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.delete(ctx, sq.Eq{"user_id": userID}, "*refreshTokenRepository.DeleteUserRefreshTokens")
	return err
}

func (r *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.delete(ctx, sq.LtOrEq{"expires_at": now}, "*refreshTokenRepository.DeleteExpiredRefreshTokens")
}

func (r *refreshTokenRepository) delete(ctx context.Context, where sq.Sqlizer, funcName string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDeleteRefreshTokensQuery(where)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error deleting refresh tokens")
		return 0, r.db.wrapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, r.db.wrapError(err)
	}

	return affected, nil
}
