// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// passwordResetRepository is the SQL implementation of
// [PasswordResetRepository] backed by the "password_reset_tokens" table.
type passwordResetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasswordResetRepository constructs a [PasswordResetRepository].
func NewPasswordResetRepository(db *DB, logger *logger.Logger) PasswordResetRepository {
	logger.Debug().Msg("creating password reset repository")
	return &passwordResetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *passwordResetRepository) SaveResetToken(ctx context.Context, token models.PasswordResetToken) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildUpsertResetTokenQuery(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.SaveResetToken").Msg("error saving reset token")
		return r.db.wrapError(err)
	}

	return nil
}

// ResetPassword consumes the reset token, stores the new password hash and
// revokes every refresh token of the user inside one transaction.
func (r *passwordResetRepository) ResetPassword(ctx context.Context, userID uuid.UUID, tokenHash, passwordHash string, now time.Time) error {
	log := logger.FromContext(ctx)

	consumeQuery, consumeArgs, err := r.db.buildConsumeResetTokenQuery(userID, tokenHash, now)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	updateQuery, updateArgs, err := r.db.buildUpdateUserQuery(models.UserUpdate{
		ID:           userID,
		PasswordHash: &passwordHash,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	revokeQuery, revokeArgs, err := r.db.buildDeleteRefreshTokensQuery(sq.Eq{"user_id": userID})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, consumeQuery, consumeArgs...)
		if err != nil {
			log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("error consuming reset token")
			return r.db.wrapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return r.db.wrapError(err)
		}
		if affected == 0 {
			return ErrTokenNotFound
		}

		result, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("error updating password")
			return r.db.wrapError(err)
		}
		if affected, err = result.RowsAffected(); err != nil {
			return r.db.wrapError(err)
		}
		if affected == 0 {
			return ErrNoUserWasFound
		}

		if _, err = tx.ExecContext(ctx, revokeQuery, revokeArgs...); err != nil {
			log.Err(err).Str("func", "*passwordResetRepository.ResetPassword").Msg("error revoking refresh tokens")
			return r.db.wrapError(err)
		}

		return nil
	})
}

func (r *passwordResetRepository) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDeleteExpiredResetTokensQuery(now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.DeleteExpiredResetTokens").Msg("error deleting reset tokens")
		return 0, r.db.wrapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, r.db.wrapError(err)
	}

	return affected, nil
}
