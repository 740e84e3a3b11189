package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courseroom/backend/internal/config"
	"github.com/courseroom/backend/internal/pkg/logger"
)

// PostgresDB holds the connection pools. Writer always points at the
// primary; Reader points at a replica when one is configured and may
// therefore serve stale rows for a short window after a write.
type PostgresDB struct {
	Writer *pgxpool.Pool
	Reader *pgxpool.Pool
}

// NewPostgresDB creates connection pools from configuration
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	writer, err := newPool(cfg, cfg.GetPostgresConnectionString(), "primary")
	if err != nil {
		return nil, err
	}

	reader := writer
	if replicaDSN := cfg.GetReplicaConnectionString(); replicaDSN != "" {
		reader, err = newPool(cfg, replicaDSN, "replica")
		if err != nil {
			writer.Close()
			return nil, err
		}
		logger.Info().
			Str("replica_host", cfg.Database.ReplicaHost).
			Msg("Reads routed to replica")
	}

	return &PostgresDB{Writer: writer, Reader: reader}, nil
}

func newPool(cfg *config.Config, dsn, role string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s pool config: %w", role, err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)

	if cfg.Database.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid conn_max_lifetime: %w", err)
		}
		poolConfig.MaxConnLifetime = lifetime
	}

	// Verify connection health before handing it to a caller
	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		return conn.Ping(ctx) == nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s connection pool: %w", role, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", role, err)
	}

	logger.Info().
		Str("role", role).
		Str("database", cfg.Database.DBName).
		Msg("Database connection established")

	return pool, nil
}

// Close closes both pools
func (p *PostgresDB) Close() {
	if p.Reader != nil && p.Reader != p.Writer {
		p.Reader.Close()
	}
	if p.Writer != nil {
		p.Writer.Close()
	}
}
