// Package redis stores sessions and transcripts in Redis with a native key
// TTL, so expiry needs no sweep: a session untouched for the TTL simply
// disappears. Every write refreshes the TTL, mirroring last-activity expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"interview-agent/internal/domain"
	"interview-agent/internal/persona"
)

const (
	sessionKeyPrefix = "interview:session:"
	turnsKeyPrefix   = "interview:turns:"

	// appendRetries bounds the optimistic WATCH loop on write contention.
	appendRetries = 5
)

type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// sessionRecord is the serialized layout at the durable-storage boundary:
// {id, owner_id, resume_context, history, last_active_at}. The analysis is
// not stored; it is recomputed from the verbatim resume on load, which is
// deterministic.
type sessionRecord struct {
	ID            string               `json:"id"`
	OwnerID       string               `json:"owner_id"`
	ResumeContext string               `json:"resume_context"`
	History       []domain.ChatMessage `json:"history"`
	LastActiveAt  time.Time            `json:"last_active_at"`
}

func sessionKey(id domain.SessionID) string {
	return sessionKeyPrefix + string(id)
}

func turnsKey(id domain.SessionID) string {
	return turnsKeyPrefix + string(id)
}

func toRecord(s *domain.Session) sessionRecord {
	return sessionRecord{
		ID:            string(s.ID),
		OwnerID:       string(s.OwnerID),
		ResumeContext: s.ResumeContext,
		History:       s.History,
		LastActiveAt:  s.LastActiveAt,
	}
}

func fromRecord(rec sessionRecord) *domain.Session {
	return &domain.Session{
		ID:            domain.SessionID(rec.ID),
		OwnerID:       domain.OwnerID(rec.OwnerID),
		ResumeContext: rec.ResumeContext,
		Analysis:      persona.Analyze(rec.ResumeContext),
		History:       rec.History,
		LastActiveAt:  rec.LastActiveAt,
	}
}

func (s *SessionStore) CreateSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(toRecord(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis CreateSession: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s already exists", session.ID)
	}
	return nil
}

func (s *SessionStore) load(ctx context.Context, id domain.SessionID) (sessionRecord, error) {
	var rec sessionRecord

	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, domain.ErrSessionNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("redis GetSession: %w", err)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode session record: %w", err)
	}
	return rec, nil
}

func (s *SessionStore) GetSession(ctx context.Context, id domain.SessionID, owner domain.OwnerID) (*domain.Session, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != string(owner) {
		return nil, domain.ErrNotOwner
	}
	return fromRecord(rec), nil
}

// mutate runs an optimistic read-modify-write transaction on the session
// key, serializing concurrent writers for the same session.
func (s *SessionStore) mutate(ctx context.Context, id domain.SessionID, fn func(rec *sessionRecord) error) error {
	key := sessionKey(id)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("redis read session: %w", err)
		}

		var rec sessionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode session record: %w", err)
		}

		if err := fn(&rec); err != nil {
			return err
		}

		out, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < appendRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("redis session %s: too much write contention", id)
}

func (s *SessionStore) AppendTurn(ctx context.Context, id domain.SessionID, question, answer domain.ChatMessage) error {
	return s.mutate(ctx, id, func(rec *sessionRecord) error {
		rec.History = append(rec.History, question, answer)
		rec.LastActiveAt = time.Now()
		return nil
	})
}

func (s *SessionStore) ReplaceHistory(ctx context.Context, id domain.SessionID, history []domain.ChatMessage) error {
	return s.mutate(ctx, id, func(rec *sessionRecord) error {
		rec.History = append([]domain.ChatMessage(nil), history...)
		rec.LastActiveAt = time.Now()
		return nil
	})
}

func (s *SessionStore) ClearSession(ctx context.Context, id domain.SessionID, owner domain.OwnerID) error {
	return s.mutate(ctx, id, func(rec *sessionRecord) error {
		if rec.OwnerID != string(owner) {
			return domain.ErrNotOwner
		}
		if len(rec.History) > 1 {
			rec.History = rec.History[:1]
		}
		rec.LastActiveAt = time.Now()
		return nil
	})
}
