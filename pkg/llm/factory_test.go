package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dash-inc/dash-engine/pkg/config"
)

func TestNewSummaryClient(t *testing.T) {
	t.Run("openai provider", func(t *testing.T) {
		client, err := NewSummaryClient(&config.AIConfig{
			Provider: "openai",
			Endpoint: "http://localhost:11434/v1",
			Model:    "qwen2.5:3b",
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &Client{}, client)
		assert.Equal(t, "qwen2.5:3b", client.GetModel())
	})

	t.Run("empty provider defaults to openai", func(t *testing.T) {
		client, err := NewSummaryClient(&config.AIConfig{
			Endpoint: "http://localhost:11434/v1",
			Model:    "qwen2.5:3b",
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &Client{}, client)
	})

	t.Run("anthropic provider", func(t *testing.T) {
		client, err := NewSummaryClient(&config.AIConfig{
			Provider: "anthropic",
			Model:    "claude-sonnet-4-5-20250929",
			APIKey:   "test-key",
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &AnthropicClient{}, client)
	})

	t.Run("anthropic requires api key", func(t *testing.T) {
		_, err := NewSummaryClient(&config.AIConfig{
			Provider: "anthropic",
			Model:    "claude-sonnet-4-5-20250929",
		}, nil)
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewSummaryClient(&config.AIConfig{Provider: "cohere"}, nil)
		assert.ErrorContains(t, err, "unknown AI provider")
	})

	t.Run("openai requires endpoint", func(t *testing.T) {
		_, err := NewSummaryClient(&config.AIConfig{
			Provider: "openai",
			Model:    "qwen2.5:3b",
		}, nil)
		assert.Error(t, err)
	})
}
