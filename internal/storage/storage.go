// Package storage defines the persistence contracts of the service.
//
// Evaluation itself never touches storage; the only persisted data is
// operational telemetry appended by the transport layer.
package storage

import (
	"context"
	"time"
)

// TelemetryEvent records one completed evaluation.
type TelemetryEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	Substitution string    `json:"substitution"`
	Outcome      string    `json:"outcome"` // "ok" or a domain error code
	DurationMs   int64     `json:"duration_ms"`
}

// TelemetryStore persists evaluation telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}

// TelemetryReader reads back persisted telemetry events.
type TelemetryReader interface {
	RecentTelemetryEvents(ctx context.Context, limit int) ([]TelemetryEvent, error)
}
