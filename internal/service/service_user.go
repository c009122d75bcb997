// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/crypto"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
	"github.com/MKhiriev/go-fullstack-auth/internal/validators"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const (
	// DefaultListLimit is the page size used when none is requested.
	DefaultListLimit = 100
	// MaxListLimit caps the page size of ListUsers.
	MaxListLimit = 1000
)

type userService struct {
	users         store.UserRepository
	refreshTokens store.RefreshTokenRepository
	hasher        crypto.PasswordHasher
	validator     validators.Validator

	opts   options
	logger *logger.Logger
}

func NewUserService(storages *store.Storages, hasher crypto.PasswordHasher, logger *logger.Logger, opts ...Option) UserService {
	return &userService{
		users:         storages.UserRepository,
		refreshTokens: storages.RefreshTokenRepository,
		hasher:        hasher,
		validator:     validators.NewUserValidator(),
		opts:          newOptions(opts),
		logger:        logger,
	}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, storeError(err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit uint64) ([]models.User, int64, error) {
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	users, total, err := s.users.ListUsers(ctx, skip, limit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("error listing users")
		return nil, 0, storeError(err)
	}

	return users, total, nil
}

// CreateUser creates an account on behalf of a superuser. Accounts are
// active unless the request says otherwise.
func (s *userService) CreateUser(ctx context.Context, req models.AdminCreateUserRequest) (models.User, error) {
	req.Email = validators.NormalizeEmail(req.Email)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user, err := createAccount(ctx, s.users, s.hasher, s.opts, account{
		email:     req.Email,
		password:  req.Password,
		fullName:  req.FullName,
		active:    active,
		superuser: req.IsSuperuser,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.CreateUser").Msg("user creation ended with error")
		return models.User{}, err
	}

	return user, nil
}

func (s *userService) UpdateMe(ctx context.Context, id uuid.UUID, req models.UpdateMeRequest) (models.User, error) {
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	return s.update(ctx, models.UserUpdate{
		ID:       id,
		Email:    req.Email,
		FullName: req.FullName,
	})
}

// UpdatePassword changes the password after checking the current one. Other
// sessions of the user are logged out.
//
// Returns:
//   - ErrInvalidCredentials if the current password is wrong.
//   - ErrInvalidDataProvided if the new password equals the current one.
//   - ErrWeakPassword if the new password violates the policy.
func (s *userService) UpdatePassword(ctx context.Context, id uuid.UUID, req models.UpdatePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return storeError(err)
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	if req.CurrentPassword == req.NewPassword {
		return fmt.Errorf("%w: new password cannot be the same as the current one", ErrInvalidDataProvided)
	}
	if err = s.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	passwordHash, err := s.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if _, err = s.update(ctx, models.UserUpdate{ID: id, PasswordHash: &passwordHash}); err != nil {
		return err
	}

	if err = s.refreshTokens.DeleteUserRefreshTokens(ctx, id); err != nil {
		log.Err(err).Str("func", "*userService.UpdatePassword").Msg("error revoking refresh tokens")
		return storeError(err)
	}

	log.Info().Str("user_id", id.String()).Msg("password updated")
	return nil
}

// UpdateUser applies an administrative partial update.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req models.AdminUpdateUserRequest) (models.User, error) {
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	update := models.UserUpdate{
		ID:          id,
		Email:       req.Email,
		FullName:    req.FullName,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	}

	if req.Password != nil {
		passwordHash, err := s.hasher.Hash(ctx, *req.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		update.PasswordHash = &passwordHash
	}

	user, err := s.update(ctx, update)
	if err != nil {
		return models.User{}, err
	}

	if req.Password != nil || !user.IsActive {
		if err = s.refreshTokens.DeleteUserRefreshTokens(ctx, id); err != nil {
			return models.User{}, storeError(err)
		}
	}

	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return fmt.Errorf("%w: super users are not allowed to delete themselves", ErrForbidden)
	}

	inactive := false
	if _, err := s.update(ctx, models.UserUpdate{ID: id, IsActive: &inactive}); err != nil {
		return err
	}

	if err := s.refreshTokens.DeleteUserRefreshTokens(ctx, id); err != nil {
		return storeError(err)
	}

	logger.FromContext(ctx).Info().Str("user_id", id.String()).Str("actor_id", actorID.String()).Msg("user deactivated")
	return nil
}

// EnsureSuperuser seeds the first superuser. An empty email disables
// seeding; an existing account is left untouched.
func (s *userService) EnsureSuperuser(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	email = validators.NormalizeEmail(email)
	_, err := s.users.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return storeError(err)
	}

	_, err = s.CreateUser(ctx, models.AdminCreateUserRequest{
		Email:       email,
		Password:    password,
		IsSuperuser: true,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		// created concurrently by another instance
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating first superuser: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("first superuser created")
	return nil
}

func (s *userService) update(ctx context.Context, update models.UserUpdate) (models.User, error) {
	update.UpdatedAt = s.opts.utcNow()

	user, err := s.users.UpdateUser(ctx, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.update").Str("user_id", update.ID.String()).Msg("error updating user")
		return models.User{}, storeError(err)
	}

	return user, nil
}

// account holds the attributes of a user about to be created.
type account struct {
	email     string
	password  string
	fullName  string
	active    bool
	superuser bool
}

// createAccount hashes the password and stores a new user. The email must
// already be normalized and validated.
func createAccount(ctx context.Context, users store.UserRepository, hasher crypto.PasswordHasher, opts options, acc account) (models.User, error) {
	passwordHash, err := hasher.Hash(ctx, acc.password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := opts.utcNow()
	user, err := users.CreateUser(ctx, models.User{
		ID:           opts.newID(),
		Email:        acc.email,
		FullName:     acc.fullName,
		PasswordHash: passwordHash,
		IsActive:     acc.active,
		IsSuperuser:  acc.superuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return models.User{}, storeError(err)
	}

	return user, nil
}
