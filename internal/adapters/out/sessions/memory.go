// Package sessions holds the session store backends: an in-process map for a
// single instance and Redis for deployments that run several.
package sessions

import (
	"context"
	"sync"
	"time"

	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// MemoryStore keeps sessions in a map keyed by username.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]ports.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]ports.Session)}
}

func (s *MemoryStore) Save(_ context.Context, session ports.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Username] = session
	return nil
}

func (s *MemoryStore) Get(_ context.Context, username string) (ports.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[username]
	if !ok {
		return ports.Session{}, errs.NewObjectNotFoundError("session", username)
	}
	return session, nil
}

func (s *MemoryStore) Touch(_ context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[username]
	if !ok {
		return errs.NewObjectNotFoundError("session", username)
	}
	if at.After(session.LastSeen) {
		session.LastSeen = at
		s.sessions[username] = session
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, username)
	return nil
}

func (s *MemoryStore) DeleteIdle(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for username, session := range s.sessions {
		if session.LastSeen.Before(before) {
			delete(s.sessions, username)
			removed++
		}
	}
	return removed, nil
}
