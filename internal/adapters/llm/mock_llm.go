package llm

import (
	"context"
	"fmt"
	"sync"

	"interview-agent/internal/domain"
)

// MockLLM is the development stand-in for the completion provider. With no
// script it echoes an in-character reply; tests can queue canned replies and
// errors per call. Safe for concurrent use: local mode serves it straight
// from the HTTP server.
type MockLLM struct {
	mu sync.Mutex

	Replies []string
	Errs    []error

	Calls    int
	LastSent []domain.ChatMessage
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(
	_ context.Context,
	messages []domain.ChatMessage,
	_ domain.CompletionOptions,
) (string, error) {
	m.mu.Lock()
	call := m.Calls
	m.Calls++
	m.LastSent = messages
	m.mu.Unlock()

	if call < len(m.Errs) && m.Errs[call] != nil {
		return "", m.Errs[call]
	}
	if call < len(m.Replies) {
		return m.Replies[call], nil
	}

	question := ""
	if len(messages) > 0 {
		question = messages[len(messages)-1].Content
	}
	return fmt.Sprintf("That's a good question. You asked %q, let me walk you through how I handled that in my last role.", question), nil
}
