// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-fullstack-auth/internal/adapter"
	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	"github.com/MKhiriev/go-fullstack-auth/internal/crypto"
	"github.com/MKhiriev/go-fullstack-auth/internal/handler"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
	"github.com/MKhiriev/go-fullstack-auth/internal/server"
	"github.com/MKhiriev/go-fullstack-auth/internal/service"
	"github.com/MKhiriev/go-fullstack-auth/internal/store"
	"github.com/MKhiriev/go-fullstack-auth/internal/workers"
	"github.com/MKhiriev/go-fullstack-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	hasher, err := crypto.NewPasswordHasher(crypto.DefaultParams())
	if err != nil {
		log.Fatal().Err(err).Msg("error creating password hasher")
	}

	mailSender, err := adapter.NewMailSender(cfg.Adapter.SMTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail sender")
	}
	mailWorker := workers.NewMailWorker(mailSender, cfg.Workers.MailQueueSize, log)
	cleanupWorker := workers.NewCleanupWorker(storages, cfg.Workers.CleanupInterval, log)

	services, err := service.NewServices(storages, hasher, mailWorker, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if err = services.UserService.EnsureSuperuser(ctx, cfg.App.FirstSuperuserEmail, cfg.App.FirstSuperuserPassword); err != nil {
		log.Fatal().Err(err).Msg("error creating first superuser")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	handlers, err := handler.NewHandlers(services, cfg.Server, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		workers.NewWorkers(mailWorker, cleanupWorker).Run(ctx)
	})

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
	stop()
	wg.Wait()

	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
