// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-fullstack-auth/internal/config"
	myGRPC "github.com/MKhiriev/go-fullstack-auth/internal/handler/grpc"
	"github.com/MKhiriev/go-fullstack-auth/internal/logger"
)

type grpcServer struct {
	address string
	server  *grpc.Server

	mu   sync.Mutex
	addr net.Addr

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer(ctx context.Context) error {
	lis, err := (&net.ListenConfig{}).Listen(ctx, "tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", g.address, err)
	}

	g.mu.Lock()
	g.addr = lis.Addr()
	g.mu.Unlock()

	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	if err = g.server.Serve(lis); err != nil {
		return fmt.Errorf("gRPC serve: %w", err)
	}
	return nil
}

// Shutdown stops accepting RPCs and waits for pending ones. When ctx ends
// first, remaining RPCs are cancelled.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server Shutdown")

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-done
		return fmt.Errorf("gRPC shutdown: %w", ctx.Err())
	}
}

func (g *grpcServer) Addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addr
}
