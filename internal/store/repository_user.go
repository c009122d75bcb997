// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation, lookup and partial updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record. The caller assigns ID and
// timestamps, so the stored representation equals user.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - connection-level failures → wrapped [ErrStoreUnavailable].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildInsertUserQuery(user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.wrapError(err)
	}

	return user, nil
}

// FindUserByEmail retrieves the user whose folded email equals email.
// Returns [ErrNoUserWasFound] when there is no such user.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email}, "*userRepository.FindUserByEmail")
}

// FindUserByID retrieves the user with the given identifier.
// Returns [ErrNoUserWasFound] when there is no such user.
func (r *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": id}, "*userRepository.FindUserByID")
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectUserQuery(where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, r.db.wrapError(err)
	}

	return user, nil
}

// ListUsers returns one page of users ordered by creation time, plus the
// total number of users in the table.
func (r *userRepository) ListUsers(ctx context.Context, offset, limit uint64) ([]models.User, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := r.db.buildCountUsersQuery()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return nil, 0, r.db.wrapError(err)
	}

	query, args, err := r.db.buildListUsersQuery(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error selecting users")
		return nil, 0, r.db.wrapError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user")
			return nil, 0, r.db.wrapError(err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating users")
		return nil, 0, r.db.wrapError(err)
	}

	return users, total, nil
}

// UpdateUser applies the non-nil fields of update and returns the
// resulting record.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - unique violation on email → [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildUpdateUserQuery(update)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.wrapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, r.db.wrapError(err)
	}
	if affected == 0 {
		return models.User{}, ErrNoUserWasFound
	}

	return r.FindUserByID(ctx, update.ID)
}
