package memory

import (
	"context"
	"sync"

	"interview-agent/internal/domain"
)

type TranscriptStore struct {
	mu    sync.RWMutex
	turns map[domain.SessionID][]domain.Turn
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		turns: make(map[domain.SessionID][]domain.Turn),
	}
}

func (s *TranscriptStore) AppendTurnRecord(_ context.Context, id domain.SessionID, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[id] = append(s.turns[id], turn)
	return nil
}

// GetTurns returns the last `limit` turns. If limit <= 0, returns all.
func (s *TranscriptStore) GetTurns(_ context.Context, id domain.SessionID, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[id]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *TranscriptStore) ClearTurns(_ context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.turns, id)
	return nil
}
