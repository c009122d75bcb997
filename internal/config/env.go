// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environ, a list of "KEY=value" pairs as returned by
// os.Environ. Fields are matched through the `env` and `envPrefix` tags of
// [StructuredConfig]; durations use Go syntax ("15m", "168h").
func parseEnv(cfg *StructuredConfig, environ []string) error {
	err := env.ParseWithOptions(cfg, env.Options{Environment: env.ToMap(environ)})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
