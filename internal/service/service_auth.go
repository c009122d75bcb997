// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/crypto"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
	"github.com/MKhiriev/go-fullstack-auth/internal/utils"
	"github.com/MKhiriev/go-fullstack-auth/internal/validators"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

const resetPasswordSubject = "Password recovery"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the lifecycle of
// access, refresh and password reset tokens.
type authService struct {
	// users is the data-access layer used to create and look up users.
	users store.UserRepository

	// refreshTokens stores hashes of issued refresh tokens.
	refreshTokens store.RefreshTokenRepository

	// resets stores hashes of issued password reset tokens.
	resets store.PasswordResetRepository

	// hasher derives and verifies argon2id password hashes.
	hasher crypto.PasswordHasher

	// validator checks emails and the password policy.
	validator validators.Validator

	// mailQueue delivers password reset mail in the background.
	mailQueue MailQueue

	// cfg holds the signing key, issuer and token lifetimes. It is never
	// modified after construction.
	cfg config.App

	opts   options
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	mailQueue MailQueue,
	cfg config.App,
	logger *logger.Logger,
	opts ...Option,
) AuthService {
	return &authService{
		users:         storages.UserRepository,
		refreshTokens: storages.RefreshTokenRepository,
		resets:        storages.PasswordResetRepository,
		hasher:        hasher,
		validator:     validators.NewUserValidator(),
		mailQueue:     mailQueue,
		cfg:           cfg,
		opts:          newOptions(opts),
		logger:        logger,
	}
}

// Register validates the request, hashes the password and persists an
// active, non-superuser account.
//
// Returns:
//   - ErrInvalidEmail or ErrWeakPassword if validation fails.
//   - ErrDuplicateEmail if the folded email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Email = validators.NormalizeEmail(req.Email)
	if err := a.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("func", "*authService.Register").Msg("invalid registration data")
		return models.User{}, validationError(err)
	}

	user, err := createAccount(ctx, a.users, a.hasher, a.opts, account{
		email:    req.Email,
		password: req.Password,
		fullName: req.FullName,
		active:   true,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Authenticate looks the user up by folded email and verifies the password.
//
// An unknown email is verified against a dummy hash so that both failure
// paths perform exactly one argon2 verification and return the identical
// ErrInvalidCredentials. ErrInactiveUser is only reported after a correct
// password.
func (a *authService) Authenticate(ctx context.Context, email, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by email failed")
			return models.TokenPair{}, storeError(err)
		}

		if _, err = a.hasher.Verify(ctx, a.hasher.DummyHash(), password); err != nil {
			return models.TokenPair{}, fmt.Errorf("error verifying password: %w", err)
		}
		return models.TokenPair{}, ErrInvalidCredentials
	}

	ok, err := a.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Str("user_id", user.ID.String()).Msg("error verifying password")
		return models.TokenPair{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		log.Info().Str("user_id", user.ID.String()).Msg("wrong password")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.TokenPair{}, ErrInactiveUser
	}

	return a.issueTokenPair(ctx, user.ID)
}

// VerifyToken validates an access token against the configured key and
// issuer. Expired tokens with a valid signature yield ErrTokenExpired; every
// other failure yields ErrTokenInvalid.
func (a *authService) VerifyToken(token string) (models.Claims, error) {
	return a.verify(token, models.TokenTypeAccess)
}

func (a *authService) verify(token string, tokenType models.TokenType) (models.Claims, error) {
	claims, err := utils.VerifyJWT(token, a.cfg.TokenSignKey, a.cfg.TokenIssuer, tokenType, a.opts.utcNow())
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, utils.ErrTokenExpired):
		return models.Claims{}, ErrTokenExpired
	default:
		return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
}

// CurrentUser verifies the access token and loads its subject.
func (a *authService) CurrentUser(ctx context.Context, token string) (models.User, error) {
	claims, err := a.VerifyToken(token)
	if err != nil {
		return models.User{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, storeError(err)
	}
	if !user.IsActive {
		return models.User{}, ErrInactiveUser
	}

	return user, nil
}

// Refresh consumes the stored refresh token and issues a new pair. A token
// that was already rotated or revoked yields ErrTokenInvalid.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	claims, err := a.verify(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	stored, err := a.refreshTokens.ConsumeRefreshToken(ctx, utils.HashToken(claims.ID), a.opts.utcNow())
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.Refresh").Msg("refresh token was not consumed")
		return models.TokenPair{}, storeError(err)
	}

	if stored.UserID.String() != claims.Subject {
		return models.TokenPair{}, ErrTokenInvalid
	}

	user, err := a.users.FindUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrTokenInvalid
		}
		return models.TokenPair{}, storeError(err)
	}
	if !user.IsActive {
		return models.TokenPair{}, ErrInactiveUser
	}

	return a.issueTokenPair(ctx, user.ID)
}

// Logout deletes the stored refresh token. Expired tokens are accepted
// silently; they can no longer be used anyway.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := a.verify(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil
		}
		return err
	}

	if err = a.refreshTokens.DeleteRefreshToken(ctx, utils.HashToken(claims.ID)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("error deleting refresh token")
		return storeError(err)
	}

	return nil
}

// Authorize returns ErrInactiveUser for inactive users and ErrForbidden when
// user lacks role.
func (a *authService) Authorize(user models.User, role models.Role) error {
	if !user.IsActive {
		return ErrInactiveUser
	}
	if !user.HasRole(role) {
		return ErrForbidden
	}
	return nil
}

// RequestPasswordReset issues a reset token for an active user, replaces
// the previously stored one and enqueues the reset mail. Every failure is
// logged and swallowed, so callers cannot tell whether the email exists.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx).With().Str("func", "*authService.RequestPasswordReset").Logger()

	user, err := a.users.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNoUserWasFound) {
			log.Err(err).Msg("user search by email failed")
		}
		return nil
	}
	if !user.IsActive {
		log.Info().Str("user_id", user.ID.String()).Msg("password recovery requested for inactive user")
		return nil
	}

	now := a.opts.utcNow()
	token, err := utils.IssueJWT(user.ID, models.TokenTypeReset, a.cfg.ResetTokenTTL, a.cfg.TokenSignKey, a.cfg.TokenIssuer, now)
	if err != nil {
		log.Err(err).Msg("error issuing reset token")
		return nil
	}

	err = a.resets.SaveResetToken(ctx, models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(token.Claims.ID),
		ExpiresAt: token.ExpiresAt(),
		CreatedAt: now,
	})
	if err != nil {
		log.Err(err).Str("user_id", user.ID.String()).Msg("error saving reset token")
		return nil
	}

	if err = a.mailQueue.Enqueue(a.resetPasswordEmail(user, token)); err != nil {
		log.Err(err).Str("user_id", user.ID.String()).Msg("error enqueueing reset mail")
		return nil
	}

	log.Info().Str("user_id", user.ID.String()).Msg("password recovery mail enqueued")
	return nil
}

func (a *authService) resetPasswordEmail(user models.User, token models.Token) models.Email {
	link := strings.TrimRight(a.cfg.FrontendHost, "/") + "/reset-password?token=" + url.QueryEscape(token.String())

	name := user.FullName
	if name == "" {
		name = user.Email
	}

	return models.Email{
		To:      user.Email,
		Subject: resetPasswordSubject,
		Body: fmt.Sprintf(
			"Hello %s,\n\nWe received a request to reset your password. Use the link below to set a new one:\n\n%s\n\nThe link is valid for %s. If you did not request a password reset, you can ignore this email.\n",
			name, link, a.cfg.ResetTokenTTL,
		),
	}
}

// ConfirmPasswordReset verifies the reset token, checks the new password
// against the policy and then, in one transaction, consumes the token,
// stores the new hash and revokes the user's refresh tokens.
//
// Returns:
//   - ErrTokenExpired or ErrTokenInvalid for a bad token.
//   - ErrTokenInvalid if the token was already used or replaced.
//   - ErrWeakPassword if the new password violates the policy.
func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	claims, err := a.verify(token, models.TokenTypeReset)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	req := models.ResetPasswordRequest{Token: token, NewPassword: newPassword}
	if err = a.validator.Validate(ctx, req, validators.FieldNewPassword); err != nil {
		return validationError(err)
	}

	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrTokenInvalid
		}
		return storeError(err)
	}
	if !user.IsActive {
		return ErrInactiveUser
	}

	passwordHash, err := a.hasher.Hash(ctx, newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = a.resets.ResetPassword(ctx, userID, utils.HashToken(claims.ID), passwordHash, a.opts.utcNow())
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.ConfirmPasswordReset").Str("user_id", userID.String()).Msg("password was not reset")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrTokenInvalid
		}
		return storeError(err)
	}

	log.Info().Str("user_id", userID.String()).Msg("password reset")
	return nil
}

// issueTokenPair signs an access and a refresh token for userID and stores
// the refresh token hash.
func (a *authService) issueTokenPair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error) {
	now := a.opts.utcNow()

	access, err := utils.IssueJWT(userID, models.TokenTypeAccess, a.cfg.AccessTokenTTL, a.cfg.TokenSignKey, a.cfg.TokenIssuer, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.IssueJWT(userID, models.TokenTypeRefresh, a.cfg.RefreshTokenTTL, a.cfg.TokenSignKey, a.cfg.TokenIssuer, now)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	err = a.refreshTokens.SaveRefreshToken(ctx, models.RefreshToken{
		TokenHash: utils.HashToken(refresh.Claims.ID),
		UserID:    userID,
		ExpiresAt: refresh.ExpiresAt(),
		CreatedAt: now,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.issueTokenPair").Msg("error saving refresh token")
		return models.TokenPair{}, storeError(err)
	}

	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
