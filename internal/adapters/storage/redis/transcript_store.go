package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"interview-agent/internal/domain"
)

type TranscriptStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTranscriptStore(client *redis.Client, ttl time.Duration) *TranscriptStore {
	return &TranscriptStore{client: client, ttl: ttl}
}

func (s *TranscriptStore) AppendTurnRecord(ctx context.Context, id domain.SessionID, turn domain.Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := turnsKey(id)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis AppendTurnRecord: %w", err)
	}
	return nil
}

func (s *TranscriptStore) GetTurns(ctx context.Context, id domain.SessionID, limit int) ([]domain.Turn, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}

	items, err := s.client.LRange(ctx, turnsKey(id), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis GetTurns: %w", err)
	}

	out := make([]domain.Turn, 0, len(items))
	for _, item := range items {
		var turn domain.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		out = append(out, turn)
	}
	return out, nil
}

func (s *TranscriptStore) ClearTurns(ctx context.Context, id domain.SessionID) error {
	if err := s.client.Del(ctx, turnsKey(id)).Err(); err != nil {
		return fmt.Errorf("redis ClearTurns: %w", err)
	}
	return nil
}
