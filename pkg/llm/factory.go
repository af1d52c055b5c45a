package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/config"
)

// NewSummaryClient builds a summarizer client for the configured provider.
// Callers are expected to check cfg.Enabled before constructing one.
func NewSummaryClient(cfg *config.AIConfig, logger *zap.Logger) (SummaryClient, error) {
	clientCfg := &Config{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	}

	switch cfg.Provider {
	case "openai", "":
		return NewClient(clientCfg, logger)
	case "anthropic":
		return NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
}
