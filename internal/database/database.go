// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It specifically handles *database pooling* (maintaining
// active connections for efficiency), integrating the
// logger/tracer with the database driver (PGX), and layering
// the gorm ORM on top of that same pool.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/catalog-api/internal/config"
	loggerConfig "github.com/deppfellow/catalog-api/internal/logger"
	"github.com/deppfellow/catalog-api/internal/model"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database wraps the pgx connection pool and the ORM built on it.
//
// Both share the same connections: ORM queries go through the pgx pool, so
// pool tuning and tracing apply to them too.
type Database struct {
	Pool *pgxpool.Pool
	ORM  *gorm.DB
	log  *zerolog.Logger
}

// DatabasePingTimeout is the number of seconds to wait for a ping before
// considering the database unreachable.
const DatabasePingTimeout = 10

// DSN builds the postgres URL for cfg. The password is URL-escaped.
func DSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation and opens the
// ORM on top of it.
//
//   - New Relic tracing when a New Relic application is running
//   - SQL logging through pgx tracelog in the local environment
//   - slow query logging through the ORM logger everywhere
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Query logging is very noisy, local only.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	orm, err := OpenORM(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), logger, cfg.Observability)
	if err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Msg("connected to the database")

	return &Database{
		Pool: pool,
		ORM:  orm,
		log:  logger,
	}, nil
}

// OpenORM opens gorm on dialector with the zerolog-backed ORM logger.
//
// Tag.Products is mapped onto model.ProductTag so the join rows keep their
// composite primary key. Tests pass an in-memory sqlite dialector here.
func OpenORM(dialector gorm.Dialector, logger *zerolog.Logger, obs *config.ObservabilityConfig) (*gorm.DB, error) {
	slowThreshold := config.DefaultObservabilityConfig().Logging.SlowQueryThreshold
	if obs != nil && obs.Logging.SlowQueryThreshold > 0 {
		slowThreshold = obs.Logging.SlowQueryThreshold
	}

	orm, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewGormLogger(logger, slowThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open orm: %w", err)
	}

	if err := orm.SetupJoinTable(&model.Tag{}, "Products", &model.ProductTag{}); err != nil {
		return nil, fmt.Errorf("failed to set up product_tags join table: %w", err)
	}

	return orm, nil
}

// Ping checks the database through the ORM connection pool.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.ORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the ORM handle and then the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	if sqlDB, err := db.ORM.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close orm connection: %w", err)
		}
	}

	db.Pool.Close()
	return nil
}
