package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoSource is returned when no connection string is configured.
var ErrNoSource = errors.New("database source is not set")

// AuditDB stores audit events in Postgres.
type AuditDB struct {
	DB  *sql.DB
	Log zerolog.Logger
}

// NewAuditDB opens the connection and checks it with a ping.
func NewAuditDB(driver, source string) (*AuditDB, error) {
	logger := log.With().Str("component", "audit-db").Logger()

	if source == "" {
		logger.Error().Msg("database source is not set")
		return nil, ErrNoSource
	}
	if driver == "" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Error().Err(err).Msg("Database connection failed during ping")
		db.Close()
		return nil, err
	}

	return &AuditDB{DB: db, Log: logger}, nil
}

func (a *AuditDB) Close() error {
	if err := a.DB.Close(); err != nil {
		return err
	}
	a.Log.Info().Msg("database connection closed")
	return nil
}

// Migrate applies the embedded goose migrations.
func (a *AuditDB) Migrate() error {
	if err := a.DB.Ping(); err != nil {
		a.Log.Error().Err(err).Msg("Database connection ping failed")
		return fmt.Errorf("database connection ping failed: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}
	if err := goose.Up(a.DB, "migrations"); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	a.Log.Info().Msg("Migrations applied successfully")
	return nil
}
