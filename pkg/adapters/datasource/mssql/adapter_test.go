package mssql

import (
	"strings"
	"testing"

	"github.com/dash-inc/dash-engine/pkg/config"
)

func TestBuildConnectionString(t *testing.T) {
	t.Run("sql authentication", func(t *testing.T) {
		cfg := &config.TargetConfig{
			Driver:     "mssql",
			Host:       "db.example.com",
			Port:       1433,
			Database:   "ERPNextDB",
			AuthMethod: "sql",
			Username:   "svc_search",
			Password:   "p@ss:word",
		}

		dsn := buildConnectionString(cfg)

		if !strings.HasPrefix(dsn, "sqlserver://") {
			t.Errorf("expected sqlserver:// scheme, got %q", dsn)
		}
		if !strings.Contains(dsn, "svc_search:p%40ss%3Aword@db.example.com:1433") {
			t.Errorf("expected escaped credentials in DSN, got %q", dsn)
		}
		if !strings.Contains(dsn, "database=ERPNextDB") {
			t.Errorf("expected database parameter, got %q", dsn)
		}
		if !strings.Contains(dsn, "encrypt=false") {
			t.Errorf("expected encrypt=false by default, got %q", dsn)
		}
	})

	t.Run("windows authentication omits credentials", func(t *testing.T) {
		cfg := &config.TargetConfig{
			Driver:     "mssql",
			Host:       "localhost",
			Port:       1433,
			Database:   "ERPNextDB",
			AuthMethod: "windows",
		}

		dsn := buildConnectionString(cfg)

		if strings.Contains(dsn, "@localhost") {
			t.Errorf("windows auth DSN must not carry userinfo, got %q", dsn)
		}
		if !strings.Contains(dsn, "sqlserver://localhost:1433") {
			t.Errorf("expected host without credentials, got %q", dsn)
		}
	})

	t.Run("encryption and timeout options", func(t *testing.T) {
		cfg := &config.TargetConfig{
			Driver:                 "mssql",
			Host:                   "localhost",
			Port:                   1433,
			Database:               "ERPNextDB",
			AuthMethod:             "windows",
			Encrypt:                true,
			TrustServerCertificate: true,
			ConnectionTimeout:      30,
		}

		dsn := buildConnectionString(cfg)

		if !strings.Contains(dsn, "encrypt=true") {
			t.Errorf("expected encrypt=true, got %q", dsn)
		}
		if !strings.Contains(dsn, "TrustServerCertificate=true") {
			t.Errorf("expected TrustServerCertificate=true, got %q", dsn)
		}
		if !strings.Contains(dsn, "connection+timeout=30") {
			t.Errorf("expected connection timeout=30, got %q", dsn)
		}
	})
}
