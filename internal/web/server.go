// Package web hosts the substitution evaluation HTTP server.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"substeval/internal/eval"
	"substeval/internal/storage"
	storagesqlite "substeval/internal/storage/sqlite"
	"substeval/internal/substitution"
	"substeval/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// DBPath enables the SQLite telemetry store when non-empty.
	DBPath string
}

// Server hosts the HTTP server and the optional telemetry store.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *storagesqlite.Store
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	var store *storagesqlite.Store
	var telemetryStore storage.TelemetryStore
	var telemetryReader storage.TelemetryReader
	if path := strings.TrimSpace(config.DBPath); path != "" {
		opened, err := openTelemetryStore(path)
		if err != nil {
			return nil, err
		}
		store = opened
		telemetryStore = opened
		telemetryReader = opened
	}

	evaluator := eval.New(substitution.NewRegistry())
	handler := NewHandler(evaluator, telemetry.NewEmitter(telemetryStore), telemetryReader)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the telemetry store held by the server.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close telemetry store: %v", err)
	}
}

func openTelemetryStore(path string) (*storagesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := storagesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open telemetry store: %w", err)
	}
	return store, nil
}
