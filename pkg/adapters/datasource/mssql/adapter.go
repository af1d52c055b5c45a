// Package mssql implements the datasource contracts for Microsoft SQL Server.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/config"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// Adapter provides SQL Server connectivity with support for SQL and
// Windows-integrated authentication.
type Adapter struct {
	cfg    *config.TargetConfig
	db     *sql.DB
	logger *zap.Logger
}

// New creates a SQL Server adapter and verifies connectivity.
// If logger is nil, a no-op logger is used.
func New(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := buildConnectionString(cfg)
	logger.Debug("opening sqlserver connection",
		zap.String("dsn", logging.SanitizeConnectionString(dsn)))

	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	return &Adapter{
		cfg:    cfg,
		db:     db,
		logger: logger.Named("mssql"),
	}, nil
}

// buildConnectionString builds a sqlserver:// URL for the target.
// With AuthMethod "windows" no credentials are included: the driver
// falls back to SSPI integrated authentication on Windows hosts, which
// matches a Trusted_Connection=yes ODBC setup.
func buildConnectionString(cfg *config.TargetConfig) string {
	query := url.Values{}
	query.Add("database", cfg.Database)

	if cfg.Encrypt {
		query.Add("encrypt", "true")
	} else {
		query.Add("encrypt", "false")
	}
	if cfg.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}
	if cfg.ConnectionTimeout > 0 {
		query.Add("connection timeout", fmt.Sprintf("%d", cfg.ConnectionTimeout))
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		RawQuery: query.Encode(),
	}

	if cfg.AuthMethod == "sql" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}

	return u.String()
}

// TestConnection verifies the database is reachable with valid credentials.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	// Run a simple query to ensure we have database access
	var result int
	if err := a.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}

	return nil
}

// Dialect returns the SQL Server SQL fragments.
// LIKE is case-insensitive under the default server collation, which is
// the behavior the search semantics rely on.
func (a *Adapter) Dialect() datasource.Dialect {
	return datasource.Dialect{
		QuoteIdentifier: quoteName,
		MatchOperator:   "LIKE",
	}
}

// Close releases the connection pool.
func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ensure Adapter implements datasource.Adapter at compile time.
var _ datasource.Adapter = (*Adapter)(nil)

func init() {
	datasource.Register("mssql", func(ctx context.Context, cfg *config.TargetConfig, logger *zap.Logger) (datasource.Adapter, error) {
		return New(ctx, cfg, logger)
	})
}
