// Package cmd provides the shared service entrypoint helper.
package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"substeval/internal/platform/otel"
)

const otelShutdownTimeout = 5 * time.Second

// Run configures tracing and executes the service run loop until ctx ends.
func Run(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()

	return run(ctx)
}
