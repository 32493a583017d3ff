package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply: either Content or Err.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order. It backs the "mock"
// provider setting, where the empty script makes every extraction fail
// over to the sample dataset, and it is the provider used in tests.
// Replies pass through the same schema check as real responses.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	Calls    []Request
	Purposes []string
}

// NewMockProvider scripts the given replies.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{Provider: ProviderMock, Err: errScriptExhausted}
	}

	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Name() string { return ProviderMock }

// CallCount reports how many requests reached the provider.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
