package llm

import (
	"context"
)

// MockSummaryClient is a configurable mock for testing summarizer
// functionality. Set the function fields to control behavior in tests.
type MockSummaryClient struct {
	// GenerateResponseFunc is called when GenerateResponse is invoked.
	// If nil, returns an empty string and nil error.
	GenerateResponseFunc func(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	GenerateResponseCalls int
}

// NewMockSummaryClient creates a new mock with sensible defaults.
func NewMockSummaryClient() *MockSummaryClient {
	return &MockSummaryClient{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

// GenerateResponse implements SummaryClient.
func (m *MockSummaryClient) GenerateResponse(ctx context.Context, prompt string, systemMessage string, temperature float64) (string, error) {
	m.GenerateResponseCalls++
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage, temperature)
	}
	return "", nil
}

// GetModel implements SummaryClient.
func (m *MockSummaryClient) GetModel() string {
	return m.Model
}

// GetEndpoint implements SummaryClient.
func (m *MockSummaryClient) GetEndpoint() string {
	return m.Endpoint
}

// Ensure MockSummaryClient implements SummaryClient at compile time.
var _ SummaryClient = (*MockSummaryClient)(nil)
