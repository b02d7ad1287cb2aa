package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/transport-senegal/api/logger"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotConfigured is returned when DATABASE_URL is empty. Persistence is optional.
var ErrNotConfigured = errors.New("database not configured")

var DB *pgxpool.Pool

// Connect opens the pool. It never exits the process: without a database the
// API keeps serving quotes from the in-memory fallback.
func Connect(dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		logger.WarnLogger.Warn("DATABASE_URL not set, persistence disabled")
		return nil, ErrNotConfigured
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.ErrorLogger.Errorf("Unable to parse DATABASE_URL: %v", err)
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.ErrorLogger.Errorf("Database connection error: %v", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Don't block startup on a cold database.
	go func() {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pingCancel()

		if err := pool.Ping(pingCtx); err != nil {
			logger.WarnLogger.Warnf("Database cold start or unreachable: %v", err)
			return
		}
		logger.InfoLogger.Infof("Database ready (ping ok in %v)", time.Since(start))
	}()

	DB = pool
	logger.InfoLogger.Info("Connected to PostgreSQL pool (async ping).")
	return pool, nil
}

// EnsureSchema creates the tables used by the lead pipeline if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return ErrNotConfigured
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.InfoLogger.Info("Database schema ensured")
	return nil
}

// Ping reports database health; a nil pool is reported as not configured.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return ErrNotConfigured
	}
	return pool.Ping(ctx)
}

func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
		logger.InfoLogger.Info("Disconnected from PostgreSQL.")
	}
}
