package auth

import (
	"context"
	"sync"
	"time"
)

type MemSessionStore struct {
	mu   sync.RWMutex
	byID map[string]Session
	now  func() time.Time
}

func NewMemSessionStore() *MemSessionStore {
	return &MemSessionStore{byID: make(map[string]Session), now: time.Now}
}

func (s *MemSessionStore) Ping(ctx context.Context) error { return ctx.Err() }

// Save also drops every expired session so the map does not grow without bound.
func (s *MemSessionStore) Save(_ context.Context, sess Session) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, old := range s.byID {
		if !now.Before(old.ExpiresAt) {
			delete(s.byID, id)
		}
	}
	s.byID[sess.ID] = sess
	return nil
}

func (s *MemSessionStore) Lookup(_ context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(sess.ExpiresAt) {
		return Session{}, false, nil
	}
	return sess, true, nil
}

func (s *MemSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *MemSessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
