// Package server wires configuration and runtime for the substitution
// evaluation service.
package server

import (
	"context"
	"flag"
	"fmt"

	platformcmd "substeval/internal/platform/cmd"
	"substeval/internal/platform/config"
	"substeval/internal/web"
)

const serviceName = "substeval"

// Config holds the server command configuration.
type Config struct {
	HTTPAddr string `env:"SUBSTEVAL_HTTP_ADDR" envDefault:"localhost:3030"`
	DBPath   string `env:"SUBSTEVAL_DB_PATH"`
}

// ParseConfig loads environment defaults and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "telemetry SQLite path (empty disables telemetry)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the HTTP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.Run(ctx, serviceName, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{
			HTTPAddr: cfg.HTTPAddr,
			DBPath:   cfg.DBPath,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
