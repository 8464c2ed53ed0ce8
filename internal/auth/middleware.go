package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ModaVista/pkg/kit"
)

const CookieName = "sid"

type ctxKey string

const identityKey ctxKey = "identity"

type Identity struct {
	UserID    int64
	SessionID string
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserIDFromContext returns the authenticated user id, or false for anonymous callers.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// RequireUser rejects anonymous requests with 401. An explicit bearer
// Authorization header is preferred over the session cookie.
func RequireUser(sessions *Sessions, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				kit.WriteError(w, r, http.StatusUnauthorized, "not authenticated", nil)
				return
			}

			sess, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrNotAuthenticated) && log != nil {
					log.Error("resolve session failed", zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusUnauthorized, "not authenticated", nil)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: sess.UserID, SessionID: sess.ID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if tok = strings.TrimSpace(tok); tok != "" {
			return tok
		}
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}
