package llm

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-agent/internal/domain"
)

func TestMockLLMDefaultEchoesQuestion(t *testing.T) {
	m := NewMockLLM()

	reply, err := m.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Why this role?"},
	}, domain.CompletionOptions{})

	require.NoError(t, err)
	assert.Contains(t, reply, "Why this role?")
	assert.Equal(t, 1, m.Calls)
}

func TestMockLLMScriptedRepliesAndErrors(t *testing.T) {
	m := NewMockLLM()
	m.Replies = []string{"first", "second"}
	m.Errs = []error{nil, assert.AnError}

	reply, err := m.Complete(context.Background(), nil, domain.CompletionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	_, err = m.Complete(context.Background(), nil, domain.CompletionOptions{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestMockLLMConcurrentCalls(t *testing.T) {
	m := NewMockLLM()
	ctx := context.Background()

	const callers = 32

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Complete(ctx, []domain.ChatMessage{
				{Role: domain.RoleUser, Content: "q"},
			}, domain.CompletionOptions{})
		}()
	}
	wg.Wait()

	assert.Equal(t, callers, m.Calls)
	assert.Len(t, m.LastSent, 1)
}
