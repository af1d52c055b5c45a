// Package llm provides clients for the evidence summarizer model.
package llm

import (
	"context"
)

// SummaryClient defines the interface for summarizer model calls.
// Use this interface for dependency injection to enable mocking in tests.
type SummaryClient interface {
	// GenerateResponse generates a chat completion response.
	GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// GetModel returns the configured model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}
