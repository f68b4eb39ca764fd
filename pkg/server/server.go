package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apidocs"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the root router carrying /health, /metrics and /swagger/,
// and returns the subrouter mounted at /{serviceName} for domain routes.
func NewRouter(serviceName string, db Pinger) (*mux.Router, *mux.Router) {
	router := mux.NewRouter()
	router.Use(Middlewares(serviceName)...)

	RegisterHealthCheck(router, serviceName, db)
	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/swagger/").Handler(apidocs.Handler(serviceName))

	api := router.PathPrefix("/" + serviceName).Subrouter()
	return router, api
}

// RegisterHealthCheck registers the database-backed health endpoint
func RegisterHealthCheck(router *mux.Router, serviceName string, db Pinger) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "DOWN",
				"service": serviceName,
				"error":   "database unavailable",
			})
			return
		}

		RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "UP",
			"service": serviceName,
		})
	}).Methods(http.MethodGet)
}

// Run serves HTTP and gRPC until ctx is done, then marks healthServer
// NOT_SERVING and shuts both down.
func Run(ctx context.Context, httpServer *http.Server, grpcServer *grpc.Server, healthServer *health.Server, grpcPort string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+grpcPort)
		if err != nil {
			return err
		}
		logger.Logger.Info().Str("port", grpcPort).Msg("gRPC server starting")
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Logger.Info().Msg("Shutting down servers")
		if healthServer != nil {
			// Health checks see NOT_SERVING while in-flight calls drain
			healthServer.Shutdown()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// NewHTTPServer wraps handler with CORS and sensible timeouts
func NewHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           CORS(handler),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
