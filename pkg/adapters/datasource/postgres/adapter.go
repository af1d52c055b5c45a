// Package postgres implements the datasource contracts for PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/config"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// Adapter provides PostgreSQL connectivity.
type Adapter struct {
	cfg    *config.TargetConfig
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New creates a PostgreSQL adapter and verifies connectivity.
// If logger is nil, a no-op logger is used.
func New(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := buildConnectionString(cfg)
	logger.Debug("opening postgres pool",
		zap.String("dsn", logging.SanitizeConnectionString(dsn)))

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	return &Adapter{
		cfg:    cfg,
		pool:   pool,
		logger: logger.Named("postgres"),
	}, nil
}

// buildConnectionString builds a PostgreSQL URL with proper escaping.
// IMPORTANT: All user-provided fields must be URL-escaped to handle special
// characters in passwords (e.g., @, /, #, ?) that would otherwise break URL
// parsing.
func buildConnectionString(cfg *config.TargetConfig) string {
	sslMode := "prefer"
	if cfg.Encrypt {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.Username),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		url.QueryEscape(cfg.Database),
		sslMode,
	)
}

// TestConnection verifies the database is reachable with valid credentials.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	// Run a simple query to ensure we have database access
	var result int
	if err := a.pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	return nil
}

// Dialect returns the PostgreSQL SQL fragments. ILIKE is used so matching
// stays case-insensitive, mirroring SQL Server's default collation behavior.
func (a *Adapter) Dialect() datasource.Dialect {
	return datasource.Dialect{
		QuoteIdentifier: quoteName,
		MatchOperator:   "ILIKE",
	}
}

// Close releases the connection pool.
func (a *Adapter) Close() error {
	if a.pool != nil {
		a.pool.Close()
	}
	return nil
}

func quoteName(identifier string) string {
	return pgx.Identifier{identifier}.Sanitize()
}

// Ensure Adapter implements datasource.Adapter at compile time.
var _ datasource.Adapter = (*Adapter)(nil)

func init() {
	datasource.Register("postgres", func(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (datasource.Adapter, error) {
		return New(ctx, cfg, logger)
	})
}
