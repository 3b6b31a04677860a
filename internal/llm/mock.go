package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Err     error
}

// MockProvider replays scripted replies in order and keeps every request
// it was sent. Replies are not checked against the request schema. Once
// the script runs out it fails with ErrUnavailable.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

// NewMockProvider returns a MockProvider that replays script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	if len(m.script) == 0 {
		return nil, &APIError{Provider: Mock, Kind: ErrUnavailable, Err: errors.New("script exhausted")}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:      next.Content,
		Model:        Mock,
		InputTokens:  len(req.System+req.Prompt) / 4,
		OutputTokens: len(next.Content) / 4,
	}, nil
}

func (m *MockProvider) Model() string { return Mock }

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
