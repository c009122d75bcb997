// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
)

type appInfoService struct {
	appVersion string
	pinger     store.Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, pinger store.Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		pinger:     pinger,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// HealthCheck pings the store. A missing store is reported as unavailable.
func (s *appInfoService) HealthCheck(ctx context.Context) error {
	if s.pinger == nil {
		return ErrStoreUnavailable
	}

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.HealthCheck").Msg("store ping failed")
		return ErrStoreUnavailable
	}

	return nil
}
