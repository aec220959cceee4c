package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"substeval/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestOpenRequiresPath ensures a blank path is rejected.
func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

// TestAppendAndReadBack ensures events round-trip through the store.
func TestAppendAndReadBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	stamp := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	events := []storage.TelemetryEvent{
		{Timestamp: stamp, Substitution: "base", Outcome: "ok", DurationMs: 1},
		{Timestamp: stamp.Add(time.Second), Substitution: "derived", Outcome: "SUBSTITUTION_NO_MATCH", DurationMs: 2},
	}
	for _, evt := range events {
		if err := store.AppendTelemetryEvent(ctx, evt); err != nil {
			t.Fatalf("AppendTelemetryEvent returned error: %v", err)
		}
	}

	got, err := store.RecentTelemetryEvents(ctx, 10)
	if err != nil {
		t.Fatalf("RecentTelemetryEvents returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Substitution != "derived" || got[0].Outcome != "SUBSTITUTION_NO_MATCH" {
		t.Fatalf("unexpected first event: %+v", got[0])
	}
	if got[1].Substitution != "base" || got[1].Timestamp != stamp {
		t.Fatalf("unexpected second event: %+v", got[1])
	}
}

// TestAppendRequiresOutcome ensures events without an outcome are rejected.
func TestAppendRequiresOutcome(t *testing.T) {
	store := openTestStore(t)
	err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{Substitution: "base"})
	if err == nil {
		t.Fatal("expected error for missing outcome")
	}
}

// TestAppendStampsMissingTimestamp ensures zero timestamps are filled in.
func TestAppendStampsMissingTimestamp(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := store.AppendTelemetryEvent(ctx, storage.TelemetryEvent{Substitution: "count", Outcome: "ok"}); err != nil {
		t.Fatalf("AppendTelemetryEvent returned error: %v", err)
	}

	got, err := store.RecentTelemetryEvents(ctx, 1)
	if err != nil {
		t.Fatalf("RecentTelemetryEvents returned error: %v", err)
	}
	if len(got) != 1 || got[0].Timestamp.Before(before) {
		t.Fatalf("expected stamped timestamp, got %+v", got)
	}
}

// TestReopenIsIdempotent ensures migrations tolerate an existing schema.
func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	if err := first.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{Substitution: "base", Outcome: "ok"}); err != nil {
		t.Fatalf("AppendTelemetryEvent returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	defer second.Close()

	got, err := second.RecentTelemetryEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentTelemetryEvents returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected persisted event after reopen, got %d", len(got))
	}
}

// TestClosedStoreGuards ensures nil receivers fail cleanly.
func TestClosedStoreGuards(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Fatalf("nil Close returned error: %v", err)
	}
	if err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{Outcome: "ok"}); err == nil {
		t.Fatal("expected error from nil store append")
	}
	if _, err := store.RecentTelemetryEvents(context.Background(), 1); err == nil {
		t.Fatal("expected error from nil store query")
	}
}
