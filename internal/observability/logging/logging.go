package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Module labels log records with the subsystem that emitted them.
type Module string

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo identifies the running binary in log and telemetry output.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextKey string

const requestIDKey contextKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns the given request ID or mints a new one
// when the inbound value is empty or not a UUID.
func ValidateAndExtractRequestID(requestID string) string {
	if _, err := uuid.Parse(requestID); err != nil {
		return uuid.NewString()
	}
	return requestID
}

// NewHandler builds the slog handler for the service: JSON output with
// service identity attrs, request IDs pulled from the context, and GCP trace
// correlation attrs when built for gcloud.
func NewHandler(w io.Writer, level slog.Level, info ServiceInfo, env Environment, gcpProjectID string, module Module) slog.Handler {
	base := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	handler := base.WithAttrs([]slog.Attr{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
		slog.String("env", string(env)),
		slog.String("module", string(module)),
	})

	return &contextHandler{
		inner:        handler,
		gcpProjectID: gcpProjectID,
	}
}

type contextHandler struct {
	inner        slog.Handler
	gcpProjectID string
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}
	if attrs := gcpTraceAttrs(ctx, h.gcpProjectID); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		inner:        h.inner.WithAttrs(attrs),
		gcpProjectID: h.gcpProjectID,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		inner:        h.inner.WithGroup(name),
		gcpProjectID: h.gcpProjectID,
	}
}
