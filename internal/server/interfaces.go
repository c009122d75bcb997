// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled
	// or a transport fails. Enabled transports are shut down gracefully
	// before it returns.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting at most until ctx is
	// done for in-flight requests.
	Shutdown(ctx context.Context) error
}
