// Package config loads service configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Load populates target from environment variables using env struct tags.
func Load(target any) error {
	if target == nil {
		return fmt.Errorf("config target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}
