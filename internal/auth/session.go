package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 24 * time.Hour

// Sessions issues and resolves session tokens.
type Sessions struct {
	Store  SessionStore
	Tokens *TokenMaker
	TTL    time.Duration

	now func() time.Time
}

func NewSessions(st SessionStore, tokens *TokenMaker, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{Store: st, Tokens: tokens, TTL: ttl, now: time.Now}
}

// Start opens a session for userID and returns its signed token.
func (m *Sessions) Start(ctx context.Context, userID int64) (string, Session, error) {
	now := m.now()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.TTL),
	}

	if err := m.Store.Save(ctx, sess); err != nil {
		return "", Session{}, fmt.Errorf("save session: %w", err)
	}

	tok, err := m.Tokens.New(sess)
	if err != nil {
		_ = m.Store.Delete(ctx, sess.ID)
		return "", Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return tok, sess, nil
}

// Resolve maps a token to a live session. Bad signatures, expired tokens and
// revoked sessions all yield ErrNotAuthenticated.
func (m *Sessions) Resolve(ctx context.Context, token string) (Session, error) {
	claims, err := m.Tokens.Parse(token)
	if err != nil {
		return Session{}, ErrNotAuthenticated
	}

	sess, ok, err := m.Store.Lookup(ctx, claims.ID)
	if err != nil {
		return Session{}, fmt.Errorf("lookup session: %w", err)
	}
	if !ok || sess.UserID != claims.UserID {
		return Session{}, ErrNotAuthenticated
	}
	return sess, nil
}

func (m *Sessions) End(ctx context.Context, sessionID string) error {
	return m.Store.Delete(ctx, sessionID)
}
