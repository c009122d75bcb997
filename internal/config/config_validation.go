// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// minSignKeyLength is the minimal length of the HS256 signing key in bytes.
const minSignKeyLength = 32

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.TokenSignKey) < minSignKeyLength {
		return fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAppConfigs, minSignKeyLength)
	}

	if cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token issuer is empty", ErrInvalidAppConfigs)
	}

	if cfg.App.AccessTokenTTL <= 0 || cfg.App.RefreshTokenTTL <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return fmt.Errorf("%w: token TTLs must be positive", ErrInvalidAppConfigs)
	}

	if cfg.App.FirstSuperuserEmail != "" && cfg.App.FirstSuperuserPassword == "" {
		return fmt.Errorf("%w: first superuser password is empty", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is empty", ErrInvalidServerConfigs)
	}

	if cfg.Server.AuthRateLimit < 0 {
		return fmt.Errorf("%w: auth rate limit is negative", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.SMTP.Host != "" && cfg.Adapter.SMTP.From == "" {
		return fmt.Errorf("%w: SMTP from address is empty", ErrInvalidAdapterConfigs)
	}

	if cfg.Workers.MailQueueSize <= 0 || cfg.Workers.CleanupInterval <= 0 {
		return fmt.Errorf("%w: mail queue size and cleanup interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
