package bootstrap

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apidocs"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/config"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/tracing"
)

// Service holds everything a domain service main needs after startup
type Service struct {
	Config    *config.Config
	DB        *gorm.DB
	SQL       *sql.DB
	Remote    *remote.Client
	Publisher kafka.EventPublisher
	Recorder  *metrics.Recorder

	tracer trace.TracerProvider
}

// Init loads configuration, starts logging and tracing, connects to the
// database and runs migrate. Failures are fatal.
func Init(serviceName, dbName string, migrate func(*gorm.DB) error) *Service {
	cfg, err := config.LoadService(serviceName, dbName)
	if err != nil {
		logger.Init(serviceName, true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Service.Name, cfg.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.Log.Level).
		Msg("Starting service")

	svc := &Service{
		Config:   cfg,
		Recorder: metrics.NewRecorder(cfg.Service.Name),
	}

	if cfg.Jaeger.Enabled {
		tp, err := tracing.InitTracer(cfg.Service.Name, cfg.Jaeger.Endpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
			tracing.InstallPropagators()
		} else {
			svc.tracer = tp
		}
	} else {
		tracing.InstallPropagators()
	}

	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	if err := migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Str("database", cfg.DB.DBName).Msg("Database initialized successfully")

	svc.DB = db
	svc.SQL = sqlDB

	registry := discovery.NewRegistry(cfg.Discovery.Services)
	svc.Remote = remote.NewClient(registry, cfg.Remote.Timeout)

	svc.Publisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events will not be published")
		} else {
			svc.Publisher = publisher
		}
	}

	return svc
}

// EnrichOptions returns the engine options taken from configuration
func (s *Service) EnrichOptions() enrich.Options {
	return enrich.Options{MaxConcurrency: s.Config.Remote.MaxConcurrency}
}

// Consume starts a consumer on topics when Kafka is enabled. register binds
// the event handlers before consumption begins.
func (s *Service) Consume(ctx context.Context, topics []string, register func(*kafka.Consumer)) {
	if !s.Config.Kafka.Enabled {
		return
	}

	consumer, err := kafka.NewConsumer(s.Config.Kafka.Brokers, s.Config.Kafka.GroupID, topics)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable")
		return
	}
	register(consumer)
	consumer.Start(ctx)

	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close consumer")
		}
	}()
}

// Context is cancelled on SIGINT or SIGTERM
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Serve mounts the domain routes, publishes the API document and runs the
// HTTP and gRPC servers until ctx is done.
func (s *Service) Serve(ctx context.Context, title string, register func(api *mux.Router)) {
	defer s.close()

	router, api := server.NewRouter(s.Config.Service.Name, s.SQL)
	register(api)
	apidocs.Register(s.Config.Service.Name, title, apidocs.FromRouter(router))

	httpServer := server.NewHTTPServer(s.Config.HTTP.Port, router)
	grpcServer, healthServer := server.NewGRPCServer(s.Config.Service.Name)

	if err := server.Run(ctx, httpServer, grpcServer, healthServer, s.Config.GRPC.Port); err != nil {
		logger.Logger.Error().Err(err).Msg("Server stopped with error")
		return
	}
	logger.Logger.Info().Msg("Server exited")
}

func (s *Service) close() {
	if err := s.Publisher.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close publisher")
	}
	if err := s.SQL.Close(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close database")
	}
	if s.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, s.tracer); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}
}
