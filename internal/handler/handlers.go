// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler groups the transport handlers of the auth server.
package handler

import (
	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/handler/grpc"
	"github.com/MKhiriev/go-fullstack-auth/internal/handler/http"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

// Handlers holds one handler per enabled transport. A nil field means the
// transport is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates the handlers for every transport with a configured
// address.
func NewHandlers(services *service.Services, cfg config.Server, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, buildInfo, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
