package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ModaVista/internal/store"
	"ModaVista/pkg/kit"
)

const (
	defaultLoginLimit    = 10
	defaultRegisterLimit = 5
	limitWindow          = time.Minute
)

type Server struct {
	Log      *zap.Logger
	Auth     *Service
	Sessions *Sessions

	// Requests per IP per minute; zero means the default.
	LoginLimit    int
	RegisterLimit int
	CookieSecure  bool
}

func (s *Server) Routes() http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	r := chi.NewRouter()

	loginLimiter := kit.NewIPRateLimiter(orDefault(s.LoginLimit, defaultLoginLimit), limitWindow)
	registerLimiter := kit.NewIPRateLimiter(orDefault(s.RegisterLimit, defaultRegisterLimit), limitWindow)

	r.With(registerLimiter.Middleware).Post("/register", s.handleRegister)
	r.With(loginLimiter.Middleware).Post("/login", s.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(RequireUser(s.Sessions, s.Log))
		pr.Get("/logout", s.handleLogout)
		pr.Post("/logout", s.handleLogout)
		pr.Get("/user", s.handleUser)
	})

	return r
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

type registerReq struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", kit.ValidationDetails(err))
		return
	}
	if err := kit.Validate(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", kit.ValidationDetails(err))
		return
	}

	u, err := s.Auth.Register(r.Context(), RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Address:         req.Address,
		Phone:           req.Phone,
	})
	switch {
	case err == nil:
		kit.WriteJSON(w, http.StatusCreated, u)
	case errors.Is(err, ErrPasswordMismatch):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		kit.WriteError(w, r, http.StatusConflict, err.Error(), nil)
	default:
		s.Log.Error("register failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

type loginReq struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResp struct {
	store.User
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", kit.ValidationDetails(err))
		return
	}
	if err := kit.Validate(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", kit.ValidationDetails(err))
		return
	}

	u, err := s.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, ErrInvalidCredentials.Error(), nil)
		return
	}

	tok, sess, err := s.Sessions.Start(r.Context(), u.ID)
	if err != nil {
		s.Log.Error("start session failed", zap.Error(err), zap.Int64("user_id", u.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	kit.WriteJSON(w, http.StatusOK, loginResp{User: u, Token: tok})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	if err := s.Sessions.End(r.Context(), id.SessionID); err != nil {
		s.Log.Error("end session failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	kit.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFromContext(r.Context())

	u, ok := s.Auth.User(r.Context(), id.UserID)
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, u)
}
