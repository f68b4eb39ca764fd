package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

const RequestIDHeader = "X-Request-ID"

// Middlewares returns the chain every domain service runs, outermost first.
// The otelhttp span is opened before the request id and access log so both
// see the trace id.
func Middlewares(serviceName string) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		recoverPanics,
		func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, serviceName,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return r.Method + " " + routeOf(r)
				}),
			)
		},
		assignRequestID,
		observe(serviceName),
	}
}

func assignRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
	})
}

// observe writes one access log line and the RED metrics of every request.
// Metrics are labelled with the route template so ids do not explode cardinality.
func observe(serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := routeOf(r)
			metrics.ObserveHTTP(serviceName, r.Method, route, rec.status, elapsed)

			ctx := r.Context()
			event := logger.Info(ctx)
			switch {
			case rec.status >= http.StatusInternalServerError:
				event = logger.Error(ctx)
			case rec.status >= http.StatusBadRequest:
				event = logger.Warn(ctx)
			}
			event.
				Str("method", r.Method).
				Str("route", route).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Int64("duration_ms", elapsed.Milliseconds()).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}

func routeOf(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if tpl, err := current.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error(r.Context()).
					Interface("panic", p).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Recovered from panic")
				RespondJSON(w, http.StatusInternalServerError, newErrorBody(http.StatusInternalServerError, "internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS wraps h with the permissive policy the gateway relays through
func CORS(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	}).Handler(h)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}
