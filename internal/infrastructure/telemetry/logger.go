package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const httpRouteKey contextKey = "http.route"

// WithHTTPRoute stores the matched route pattern for log records
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

func HTTPRouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(httpRouteKey).(string)
	return route
}

// traceContextHandler adds trace_id, span_id and http.route from the record's context
type traceContextHandler struct {
	handler slog.Handler
}

func (h *traceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	if route := HTTPRouteFromContext(ctx); route != "" {
		r.AddAttrs(slog.String("http.route", route))
	}
	return h.handler.Handle(ctx, r)
}

func (h *traceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *traceContextHandler) WithGroup(name string) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithGroup(name)}
}

// ParseLevel converts a configured level name to slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the JSON logger with trace context injection, writing to out
func NewLogger(cfg *config.OTLPConfig, level slog.Level, out io.Writer) *slog.Logger {
	return initLogger(cfg, level, out)
}

func initLogger(cfg *config.OTLPConfig, level slog.Level, out io.Writer) *slog.Logger {
	handler := &traceContextHandler{
		handler: slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}),
	}

	return slog.New(handler).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
