// Package firestore is the durable storage backend. Sessions keep their
// history inline on the session document so a turn can be appended in a
// single transaction; client-facing turns live in a subcollection.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-agent/internal/domain"
	"interview-agent/internal/persona"
)

type Store struct {
	client *firestore.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a Firestore store for the given project. Expiry is
// enforced lazily: an expired session is deleted on first access after the
// TTL elapses.
func NewStore(ctx context.Context, projectID string, ttl time.Duration) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client, ttl: ttl, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("interview_sessions")
}

func (s *Store) sessionDoc(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) turnsCol(id domain.SessionID) *firestore.CollectionRef {
	return s.sessionDoc(id).Collection("turns")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type chatMessageDoc struct {
	Role    string `firestore:"role"`
	Content string `firestore:"content"`
}

type sessionDocData struct {
	OwnerID       string           `firestore:"owner_id"`
	ResumeContext string           `firestore:"resume_context"`
	History       []chatMessageDoc `firestore:"history"`
	LastActiveAt  time.Time        `firestore:"last_active_at"`
}

type turnDoc struct {
	Question  string    `firestore:"question"`
	Answer    string    `firestore:"answer"`
	AskedAt   time.Time `firestore:"asked_at"`
	CodeBlock string    `firestore:"code_block"`
}

func toHistoryDocs(history []domain.ChatMessage) []chatMessageDoc {
	out := make([]chatMessageDoc, 0, len(history))
	for _, m := range history {
		out = append(out, chatMessageDoc{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func fromHistoryDocs(docs []chatMessageDoc) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ChatMessage{Role: domain.Role(d.Role), Content: d.Content})
	}
	return out
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	doc := sessionDocData{
		OwnerID:       string(session.OwnerID),
		ResumeContext: session.ResumeContext,
		History:       toHistoryDocs(session.History),
		LastActiveAt:  session.LastActiveAt,
	}

	if _, err := s.sessionDoc(session.ID).Create(ctx, doc); err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID, owner domain.OwnerID) (*domain.Session, error) {
	snap, err := s.sessionDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDocData
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}

	if s.now().Sub(doc.LastActiveAt) > s.ttl {
		// Lazy expiry: reclaim the document and report the session gone.
		if _, err := s.sessionDoc(id).Delete(ctx); err != nil {
			return nil, fmt.Errorf("firestore expire session: %w", err)
		}
		return nil, domain.ErrSessionNotFound
	}

	if doc.OwnerID != string(owner) {
		return nil, domain.ErrNotOwner
	}

	return &domain.Session{
		ID:            id,
		OwnerID:       domain.OwnerID(doc.OwnerID),
		ResumeContext: doc.ResumeContext,
		Analysis:      persona.Analyze(doc.ResumeContext),
		History:       fromHistoryDocs(doc.History),
		LastActiveAt:  doc.LastActiveAt,
	}, nil
}

// mutate rewrites the session document inside a transaction, which
// serializes concurrent writers for the same session.
func (s *Store) mutate(ctx context.Context, id domain.SessionID, fn func(doc *sessionDocData) error) error {
	ref := s.sessionDoc(id)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrSessionNotFound
			}
			return fmt.Errorf("firestore read session: %w", err)
		}

		var doc sessionDocData
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("decode sessionDoc: %w", err)
		}

		if err := fn(&doc); err != nil {
			return err
		}

		doc.LastActiveAt = s.now()
		return tx.Set(ref, doc)
	})
}

func (s *Store) AppendTurn(ctx context.Context, id domain.SessionID, question, answer domain.ChatMessage) error {
	return s.mutate(ctx, id, func(doc *sessionDocData) error {
		doc.History = append(doc.History,
			chatMessageDoc{Role: string(question.Role), Content: question.Content},
			chatMessageDoc{Role: string(answer.Role), Content: answer.Content})
		return nil
	})
}

func (s *Store) ReplaceHistory(ctx context.Context, id domain.SessionID, history []domain.ChatMessage) error {
	return s.mutate(ctx, id, func(doc *sessionDocData) error {
		doc.History = toHistoryDocs(history)
		return nil
	})
}

func (s *Store) ClearSession(ctx context.Context, id domain.SessionID, owner domain.OwnerID) error {
	return s.mutate(ctx, id, func(doc *sessionDocData) error {
		if doc.OwnerID != string(owner) {
			return domain.ErrNotOwner
		}
		if len(doc.History) > 1 {
			doc.History = doc.History[:1]
		}
		return nil
	})
}

// ─────────────────────────────────────────
// TranscriptStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendTurnRecord(ctx context.Context, id domain.SessionID, turn domain.Turn) error {
	doc := turnDoc{
		Question:  turn.Question,
		Answer:    turn.Answer,
		AskedAt:   turn.AskedAt,
		CodeBlock: turn.CodeBlock,
	}

	if _, _, err := s.turnsCol(id).Add(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendTurnRecord: %w", err)
	}
	return nil
}

func (s *Store) GetTurns(ctx context.Context, id domain.SessionID, limit int) ([]domain.Turn, error) {
	q := s.turnsCol(id).OrderBy("asked_at", firestore.Asc)
	if limit > 0 {
		q = s.turnsCol(id).OrderBy("asked_at", firestore.Desc).Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.Turn
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetTurns: %w", err)
		}

		var doc turnDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode turnDoc: %w", err)
		}

		out = append(out, domain.Turn{
			Question:  doc.Question,
			Answer:    doc.Answer,
			AskedAt:   doc.AskedAt,
			CodeBlock: doc.CodeBlock,
		})
	}

	if limit > 0 {
		// The limited query reads newest-first; restore chronological order.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *Store) ClearTurns(ctx context.Context, id domain.SessionID) error {
	iter := s.turnsCol(id).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return fmt.Errorf("firestore ClearTurns: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore ClearTurns delete: %w", err)
		}
	}
	return nil
}
