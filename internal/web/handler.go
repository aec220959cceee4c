package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"substeval/internal/eval"
	apperrors "substeval/internal/platform/errors"
	"substeval/internal/storage"
	"substeval/internal/telemetry"
	"substeval/internal/web/httpx"
	"substeval/internal/web/templates"
)

// NewHandler builds the HTTP handler for the web server. reader may be nil
// when telemetry storage is disabled.
func NewHandler(evaluator *eval.Evaluator, emitter *telemetry.Emitter, reader storage.TelemetryReader) http.Handler {
	h := &handler{
		evaluator: evaluator,
		emitter:   emitter,
		reader:    reader,
		tracer:    otel.Tracer("substeval/web"),
	}

	mux := http.NewServeMux()
	mux.Handle("/", templ.Handler(templates.Home(evaluator.Substitutions())))
	mux.Handle("/api/assignment", httpx.Chain(
		http.HandlerFunc(h.handleAssignment),
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.RequireMethod(http.MethodPost),
	))
	mux.Handle("/api/telemetry/recent", httpx.Chain(
		http.HandlerFunc(h.handleRecentTelemetry),
		httpx.RequestID(),
		httpx.RecoverPanic(),
		httpx.RequireMethod(http.MethodGet),
	))
	return mux
}

type handler struct {
	evaluator *eval.Evaluator
	emitter   *telemetry.Emitter
	reader    storage.TelemetryReader
	tracer    trace.Tracer
}

// handleAssignment decodes the request, evaluates it, and serializes the
// result or the typed error.
func (h *handler) handleAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "web.assignment")
	defer span.End()

	var payload struct {
		Input        string `json:"input"`
		Substitution string `json:"substitution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, apperrors.New(apperrors.CodeInvalidRequest, "invalid json body"))
		return
	}
	span.SetAttributes(attribute.String("substitution", payload.Substitution))

	started := time.Now()
	result, err := h.evaluator.Evaluate(payload.Input, payload.Substitution)
	h.emit(ctx, payload.Substitution, err, time.Since(started))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(apperrors.CodeOf(err)))
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// handleRecentTelemetry returns the latest recorded evaluations, newest
// first. Without a configured store the list is empty.
func (h *handler) handleRecentTelemetry(w http.ResponseWriter, r *http.Request) {
	events := []storage.TelemetryEvent{}
	if h.reader != nil {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		recent, err := h.reader.RecentTelemetryEvents(r.Context(), limit)
		if err != nil {
			log.Printf("read recent telemetry events: %v", err)
			h.writeError(w, apperrors.Wrap(apperrors.CodeUnknown, "read telemetry events", err))
			return
		}
		events = append(events, recent...)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *handler) emit(ctx context.Context, substitution string, evalErr error, duration time.Duration) {
	outcome := "ok"
	if evalErr != nil {
		outcome = string(apperrors.CodeOf(evalErr))
	}
	evt := storage.TelemetryEvent{
		Substitution: substitution,
		Outcome:      outcome,
		DurationMs:   duration.Milliseconds(),
	}
	if err := h.emitter.Emit(ctx, evt); err != nil {
		log.Printf("emit telemetry event: %v", err)
	}
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSON(w, apperrors.HTTPStatus(err), map[string]any{
		"error": map[string]string{
			"code":    string(apperrors.CodeOf(err)),
			"message": err.Error(),
		},
	})
}
