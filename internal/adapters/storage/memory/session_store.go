// Package memory holds the in-process store implementations. They are NOT
// persistent and lose all state on restart; that is a documented property
// of the local mode, not a bug.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"interview-agent/internal/domain"
)

var errSessionExists = errors.New("session already exists")

// sessionEntry wraps a session with its own lock so turns for one session
// are serialized while distinct sessions proceed in parallel.
type sessionEntry struct {
	mu      sync.Mutex
	session domain.Session
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry

	ttl  time.Duration
	now  func() time.Time
	stop chan struct{}
}

// NewSessionStore creates a session store with the given TTL and starts a
// background sweep so abandoned sessions do not accumulate unboundedly.
// Expiry is also checked lazily on every access.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[domain.SessionID]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go s.sweepLoop(sweepInterval(ttl))
	return s
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}

// Close stops the background sweep.
func (s *SessionStore) Close() {
	close(s.stop)
}

func (s *SessionStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SessionStore) sweep() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		entry.mu.Lock()
		expired := now.Sub(entry.session.LastActiveAt) > s.ttl
		entry.mu.Unlock()
		if expired {
			delete(s.sessions, id)
		}
	}
}

func (s *SessionStore) expired(lastActive time.Time) bool {
	return s.now().Sub(lastActive) > s.ttl
}

func (s *SessionStore) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return errSessionExists
	}

	stored := *session
	stored.History = append([]domain.ChatMessage(nil), session.History...)
	s.sessions[session.ID] = &sessionEntry{session: stored}
	return nil
}

// entry looks up a live entry, lazily deleting it when expired.
func (s *SessionStore) entry(id domain.SessionID) (*sessionEntry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	e.mu.Lock()
	lastActive := e.session.LastActiveAt
	e.mu.Unlock()

	if s.expired(lastActive) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	return e, nil
}

func (s *SessionStore) GetSession(_ context.Context, id domain.SessionID, owner domain.OwnerID) (*domain.Session, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.OwnerID != owner {
		return nil, domain.ErrNotOwner
	}

	out := e.session
	out.History = append([]domain.ChatMessage(nil), e.session.History...)
	return &out, nil
}

func (s *SessionStore) AppendTurn(_ context.Context, id domain.SessionID, question, answer domain.ChatMessage) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.History = append(e.session.History, question, answer)
	e.session.LastActiveAt = s.now()
	return nil
}

func (s *SessionStore) ReplaceHistory(_ context.Context, id domain.SessionID, history []domain.ChatMessage) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.History = append([]domain.ChatMessage(nil), history...)
	e.session.LastActiveAt = s.now()
	return nil
}

func (s *SessionStore) ClearSession(_ context.Context, id domain.SessionID, owner domain.OwnerID) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.OwnerID != owner {
		return domain.ErrNotOwner
	}

	e.session.History = e.session.History[:1]
	e.session.LastActiveAt = s.now()
	return nil
}
