package config

import (
	"fmt"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for dash-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// Target datasource (the database the search runs against)
	Target TargetConfig `yaml:"target"`

	// Search behavior
	Search SearchConfig `yaml:"search"`

	// Evidence summarizer (LLM) configuration
	AI AIConfig `yaml:"ai"`
}

// TargetConfig holds connection settings for the searched database.
// This replaces per-call-site environment lookups: it is constructed once
// at startup and passed by reference into the introspector and scanner.
type TargetConfig struct {
	// Driver selects the datasource adapter: "mssql" or "postgres".
	Driver   string `yaml:"driver" env:"TARGET_DRIVER" env-default:"mssql"`
	Host     string `yaml:"host" env:"TARGET_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"TARGET_PORT" env-default:"1433"`
	Database string `yaml:"database" env:"TARGET_DATABASE" env-default:"ERPNextDB"`

	// AuthMethod determines which authentication to use.
	// Options: "windows" (integrated auth, mssql only), "sql" (username/password).
	AuthMethod string `yaml:"auth_method" env:"TARGET_AUTH_METHOD" env-default:"windows"`
	Username   string `yaml:"username" env:"TARGET_USERNAME" env-default:""`
	Password   string `yaml:"-" env:"TARGET_PASSWORD"` // Secret - not in YAML

	// Connection options
	Encrypt                bool `yaml:"encrypt" env:"TARGET_ENCRYPT" env-default:"false"`
	TrustServerCertificate bool `yaml:"trust_server_certificate" env:"TARGET_TRUST_SERVER_CERTIFICATE" env-default:"true"`
	ConnectionTimeout      int  `yaml:"connection_timeout" env:"TARGET_CONNECTION_TIMEOUT" env-default:"30"`
}

// SearchConfig holds the cross-table search limits.
type SearchConfig struct {
	// SampleLimit is how many rows per table are fetched as evidence.
	SampleLimit int `yaml:"sample_limit" env:"SEARCH_SAMPLE_LIMIT" env-default:"10"`
	// TableBudget is the early-stop limit: once this many tables have
	// yielded matches, remaining tables are not scanned.
	TableBudget int `yaml:"table_budget" env:"SEARCH_TABLE_BUDGET" env-default:"10"`
}

// AIConfig holds summarizer endpoint configuration.
// Provider "openai" works with any OpenAI-compatible endpoint, which
// covers Ollama and vLLM local deployments as well as hosted OpenAI.
type AIConfig struct {
	Enabled     bool    `yaml:"enabled" env:"AI_ENABLED" env-default:"true"`
	Provider    string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	Endpoint    string  `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"http://localhost:11434/v1"`
	Model       string  `yaml:"model" env:"AI_MODEL" env-default:"qwen2.5:3b"`
	APIKey      string  `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.2"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// Validate checks cross-field constraints that cleanenv tags cannot express.
func (c *Config) Validate() error {
	switch c.Target.Driver {
	case "mssql", "postgres":
	default:
		return fmt.Errorf("unsupported target driver: %q (must be mssql or postgres)", c.Target.Driver)
	}

	switch c.Target.AuthMethod {
	case "windows":
		if c.Target.Driver != "mssql" {
			return fmt.Errorf("windows auth is only supported by the mssql driver")
		}
	case "sql":
		if c.Target.Username == "" {
			return fmt.Errorf("username is required for sql authentication")
		}
	default:
		return fmt.Errorf("invalid auth method: %q (must be windows or sql)", c.Target.AuthMethod)
	}

	if c.Search.SampleLimit <= 0 {
		return fmt.Errorf("search sample_limit must be positive, got %d", c.Search.SampleLimit)
	}
	if c.Search.TableBudget < 0 {
		return fmt.Errorf("search table_budget must not be negative, got %d", c.Search.TableBudget)
	}

	if c.AI.Enabled {
		switch c.AI.Provider {
		case "openai", "anthropic":
		default:
			return fmt.Errorf("unsupported ai provider: %q (must be openai or anthropic)", c.AI.Provider)
		}
		if c.AI.Endpoint == "" && c.AI.Provider == "openai" {
			return fmt.Errorf("ai endpoint is required for the openai provider")
		}
		if c.AI.Model == "" {
			return fmt.Errorf("ai model is required when the summarizer is enabled")
		}
	}

	return nil
}
