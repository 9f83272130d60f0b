package domain

import "context"

// CompletionOptions are the sampling parameters for one model invocation.
type CompletionOptions struct {
	Temperature      float32
	MaxOutputTokens  int32
	PresencePenalty  float32
	FrequencyPenalty float32
}

// LLMClient defines how the core interacts with a chat-completion service.
// Implementations must translate provider failures into *ModelError so the
// orchestrator never inspects provider-specific error shapes.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage, opts CompletionOptions) (string, error)
}

// SessionStore defines session persistence.
//
// GetSession and ClearSession take the requesting owner and must reject
// cross-owner access with ErrNotOwner. Sessions whose LastActiveAt is older
// than the store's TTL are treated as absent (ErrSessionNotFound).
//
// AppendTurn and ReplaceHistory must serialize concurrent calls for the same
// session id; calls for different sessions may proceed in parallel. Both
// refresh LastActiveAt.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id SessionID, owner OwnerID) (*Session, error)

	// AppendTurn appends the question and the answer, in that order.
	AppendTurn(ctx context.Context, id SessionID, question, answer ChatMessage) error

	// ReplaceHistory swaps the full history, used after an overflow-triggered
	// truncation so later turns continue from the reduced context.
	ReplaceHistory(ctx context.Context, id SessionID, history []ChatMessage) error

	// ClearSession truncates the history back to the persona message only.
	// The session id stays valid.
	ClearSession(ctx context.Context, id SessionID, owner OwnerID) error
}

// TranscriptStore persists the client-facing turn log.
type TranscriptStore interface {
	AppendTurnRecord(ctx context.Context, id SessionID, turn Turn) error
	GetTurns(ctx context.Context, id SessionID, limit int) ([]Turn, error)
	ClearTurns(ctx context.Context, id SessionID) error
}
