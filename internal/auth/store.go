package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Session binds an opaque id to the user it was issued for.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionStore interface {
	Save(ctx context.Context, s Session) error
	// Lookup reports false for unknown and expired sessions.
	Lookup(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
