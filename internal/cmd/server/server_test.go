package server

import (
	"context"
	"flag"
	"testing"
)

// TestParseConfigDefaults ensures the built-in defaults apply.
func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("SUBSTEVAL_HTTP_ADDR", "")
	t.Setenv("SUBSTEVAL_DB_PATH", "")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.HTTPAddr != "localhost:3030" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.DBPath)
	}
}

// TestParseConfigEnvAndFlags ensures flags override environment values.
func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("SUBSTEVAL_HTTP_ADDR", "env:9000")
	t.Setenv("SUBSTEVAL_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag:9001"})
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.HTTPAddr != "flag:9001" {
		t.Fatalf("expected flag value for addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
}

// TestParseConfigRejectsUnknownFlags ensures flag errors surface.
func TestParseConfigRejectsUnknownFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-bogus"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestRunRejectsBlankAddr ensures server init failures surface through Run.
func TestRunRejectsBlankAddr(t *testing.T) {
	t.Setenv("SUBSTEVAL_OTEL_ENDPOINT", "")

	if err := Run(context.Background(), Config{HTTPAddr: " "}); err == nil {
		t.Fatal("expected error for blank address")
	}
}

// TestRunStopsOnContextEnd ensures cancellation ends the run loop cleanly.
func TestRunStopsOnContextEnd(t *testing.T) {
	t.Setenv("SUBSTEVAL_OTEL_ENDPOINT", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, Config{HTTPAddr: "127.0.0.1:0"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}
