package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

var Logger zerolog.Logger

type requestIDKey struct{}

// Init points the global logger at stdout: JSON in production, a console
// writer in development.
func Init(serviceName string, isDevelopment bool) {
	if isDevelopment {
		Use(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}, serviceName)
		return
	}
	Use(os.Stdout, serviceName)
}

// Use points the global logger at w. Tests use it to capture output.
func Use(w io.Writer, serviceName string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Logger = zerolog.New(w).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// ContextWithRequestID stores the inbound request id for later log lines
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by ContextWithRequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext returns a logger carrying the trace and request ids of ctx
func WithContext(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanContextFromContext(ctx)
	requestID := RequestIDFromContext(ctx)
	if !sc.IsValid() && requestID == "" {
		return &Logger
	}

	fields := Logger.With()
	if sc.IsValid() {
		fields = fields.Str("trace_id", sc.TraceID().String()).Str("span_id", sc.SpanID().String())
	}
	if requestID != "" {
		fields = fields.Str("request_id", requestID)
	}
	l := fields.Logger()
	return &l
}

func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

func Fatal(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Fatal()
}

// SetLevel sets the global log level. Empty or unknown values mean info.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
