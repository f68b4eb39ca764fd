package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// Config holds database configuration
type Config struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN renders the lib/pq connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// NewPostgresConnection opens and pings a lib/pq connection pool
func NewPostgresConnection(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to PostgreSQL")
	return db, nil
}

// NewGormConnection wraps the lib/pq pool in gorm
func NewGormConnection(cfg Config) (*gorm.DB, error) {
	sqlDB, err := NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}
	return OpenGorm(sqlDB)
}

// OpenGorm builds a gorm handle over an existing pool. Tests pass a sqlmock pool.
func OpenGorm(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TranslateError maps driver and gorm errors onto application errors.
// entity and key describe the row the caller was working on.
func TranslateError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(entity, key)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case uniqueViolation:
			return apperror.Conflict(entity, err)
		case foreignKeyViolation:
			return apperror.Validationf("%s references a missing row: %s", entity, pqErr.Detail)
		}
	}

	return fmt.Errorf("%s store: %w", entity, err)
}

// RowsOrNotFound turns a write that touched no row into NotFound
func RowsOrNotFound(result *gorm.DB, entity string, key any) error {
	if result.Error != nil {
		return TranslateError(result.Error, entity, key)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(entity, key)
	}
	return nil
}
