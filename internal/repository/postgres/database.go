// Package postgres implements the entity store on PostgreSQL using a pgx pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/config"
)

// Database holds the connection pool and implements the entity store.
type Database struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDatabase connects to PostgreSQL, retrying with exponential backoff, and
// bootstraps the schema.
func NewDatabase(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var pool *pgxpool.Pool
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Info("connecting to database",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.String("host", poolConfig.ConnConfig.Host),
			zap.String("database", poolConfig.ConnConfig.Database))

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				break
			}
			pool.Close()
			pool = nil
			lastErr = fmt.Errorf("ping database: %w", err)
		} else {
			lastErr = fmt.Errorf("create connection pool: %w", err)
		}

		logger.Warn("database connection failed", zap.Int("attempt", attempt), zap.Error(lastErr))
		if attempt < attempts {
			delay := cfg.RetryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if pool == nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", attempts, lastErr)
	}

	db := &Database{Pool: pool, logger: logger}

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.InitSchema(schemaCtx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database connection established")
	return db, nil
}

// Close closes the connection pool.
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		db.logger.Info("database connection pool closed")
	}
}

// Ping checks that the database is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
