// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
)

const defaultCleanupInterval = time.Hour

// CleanupWorker periodically purges expired refresh tokens and expired or
// used password reset tokens.
type CleanupWorker struct {
	refreshTokens store.RefreshTokenRepository
	resets        store.PasswordResetRepository
	interval      time.Duration
	now           func() time.Time
	logger        *logger.Logger
}

// NewCleanupWorker creates a CleanupWorker that runs every interval.
// A non-positive interval falls back to one hour.
func NewCleanupWorker(storages *store.Storages, interval time.Duration, logger *logger.Logger) *CleanupWorker {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	return &CleanupWorker{
		refreshTokens: storages.RefreshTokenRepository,
		resets:        storages.PasswordResetRepository,
		interval:      interval,
		now:           time.Now,
		logger:        logger,
	}
}

// Run purges once immediately and then on every tick until ctx is cancelled.
func (w *CleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.cleanup(ctx)
	for {
		select {
		case <-ticker.C:
			w.cleanup(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *CleanupWorker) cleanup(ctx context.Context) {
	now := w.now().UTC()

	refreshed, err := w.refreshTokens.DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		w.logger.Err(err).Str("func", "CleanupWorker.cleanup").Msg("failed to delete expired refresh tokens")
	}

	resets, err := w.resets.DeleteExpiredResetTokens(ctx, now)
	if err != nil {
		w.logger.Err(err).Str("func", "CleanupWorker.cleanup").Msg("failed to delete expired reset tokens")
	}

	if refreshed > 0 || resets > 0 {
		w.logger.Info().
			Int64("refresh_tokens", refreshed).
			Int64("reset_tokens", resets).
			Msg("expired tokens purged")
	}
}
