// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// Handler owns the REST routes and the services they delegate to.
type Handler struct {
	services *service.Services

	cfg       config.Server
	buildInfo models.AppBuildInfo

	authLimiter *ipRateLimiter

	logger *logger.Logger
}

// NewHandler creates a Handler. A positive cfg.AuthRateLimit enables per-IP
// rate limiting of the login and password recovery routes.
func NewHandler(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:    services,
		cfg:         cfg,
		buildInfo:   buildInfo,
		authLimiter: newIPRateLimiter(cfg.AuthRateLimit),
		logger:      logger,
	}
}
