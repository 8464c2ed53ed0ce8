package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ModaVista/internal/events"
	"ModaVista/internal/store"
)

type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	FirstName       string
	LastName        string
	Address         string
	Phone           string
}

// Service owns registration and credential checks. Passwords are stored as
// bcrypt hashes.
type Service struct {
	Store  *store.Store
	Events events.Publisher
	Log    *zap.Logger
	Cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(st *store.Store, pub events.Publisher, log *zap.Logger, cost int) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: st, Events: pub, Log: log, Cost: cost}
}

func HashPassword(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. The password confirmation is checked before the
// store is touched; uniqueness is checked and the user inserted under one lock.
func (s *Service) Register(ctx context.Context, in RegisterInput) (store.User, error) {
	if in.Password != in.ConfirmPassword {
		return store.User{}, ErrPasswordMismatch
	}

	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	hash, err := HashPassword(in.Password, s.Cost)
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}

	var u store.User
	err = s.Store.Update(func(tx *store.Tx) error {
		if len(tx.FindUsers(func(x store.User) bool { return x.Username == username })) > 0 {
			return ErrUsernameTaken
		}
		if len(tx.FindUsers(func(x store.User) bool { return x.Email == email })) > 0 {
			return ErrEmailTaken
		}
		u = tx.CreateUser(store.NewUser{
			Username:  username,
			Password:  hash,
			Email:     email,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Address:   strings.TrimSpace(in.Address),
			Phone:     strings.TrimSpace(in.Phone),
		})
		return nil
	})
	if err != nil {
		return store.User{}, err
	}

	s.publish(ctx, events.UserRegistered, map[string]any{"userId": u.ID, "username": u.Username})
	return u, nil
}

// Login matches the trimmed username exactly and compares the password hash. Every
// failure is ErrInvalidCredentials, so callers cannot tell an unknown user
// from a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (store.User, error) {
	username = strings.TrimSpace(username)
	found := s.Store.FindUsers(func(u store.User) bool { return u.Username == username })
	if len(found) == 0 {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return store.User{}, ErrInvalidCredentials
	}

	u := found[0]
	if err := bcrypt.CompareHashAndPassword(u.Password, []byte(password)); err != nil {
		return store.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) User(ctx context.Context, id int64) (store.User, bool) {
	return s.Store.GetUser(id)
}

// dummy is compared against for unknown usernames so both failure paths
// cost one bcrypt comparison.
func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := HashPassword("not-a-real-password", s.Cost)
		if err != nil {
			s.Log.Warn("dummy hash", zap.Error(err))
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if err := s.Events.Publish(ctx, key, payload); err != nil {
		s.Log.Warn("publish event failed", zap.String("key", key), zap.Error(err))
	}
}
