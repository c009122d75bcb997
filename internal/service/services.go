// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/crypto"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, hasher crypto.PasswordHasher, mailQueue MailQueue, cfg config.App, logger *logger.Logger, opts ...Option) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, storages.Pinger, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:    NewAuthService(storages, hasher, mailQueue, cfg, logger, opts...),
		UserService:    NewUserService(storages, hasher, logger, opts...),
		AppInfoService: appInfoService,
	}, nil
}
