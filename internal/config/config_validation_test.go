// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "short sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "short" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty issuer",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenIssuer = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero reset ttl",
			mutate:  func(cfg *StructuredConfig) { cfg.App.ResetTokenTTL = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "superuser without password",
			mutate:  func(cfg *StructuredConfig) { cfg.App.FirstSuperuserEmail = "admin@example.com" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.AuthRateLimit = -1 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "smtp host without sender",
			mutate:  func(cfg *StructuredConfig) { cfg.Adapter.SMTP.Host = "smtp.example.com" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero mail queue",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.MailQueueSize = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
