package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ModaVista/internal/auth"
	"ModaVista/pkg/kit"
)

// Server serves the signed-in user's cart. Routes expects auth.RequireUser
// to run first.
type Server struct {
	Cart *Service
	Log  *zap.Logger
}

func (s *Server) Routes() http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Post("/", s.add)
	r.Delete("/", s.clear)
	r.Get("/summary", s.summary)
	r.Put("/{id}", s.update)
	r.Delete("/{id}", s.remove)

	return r
}

type addReq struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,min=1,max=1000000"`
}

type updateReq struct {
	Quantity int `json:"quantity" validate:"min=1,max=1000000"`
}

type summaryResp struct {
	Items      []Line          `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	c, err := s.Cart.Items(r.Context(), uid)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, c.Lines)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	c, err := s.Cart.Items(r.Context(), uid)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, summaryResp{
		Items:      c.Lines,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if err := kit.Validate(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", kit.ValidationDetails(err))
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	item, _, err := s.Cart.Add(r.Context(), uid, req.ProductID, qty)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if err := kit.Validate(req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", kit.ValidationDetails(err))
		return
	}

	item, err := s.Cart.UpdateQuantity(r.Context(), uid, id, req.Quantity)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, item)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !s.Cart.Remove(r.Context(), uid, id) {
		kit.WriteError(w, r, http.StatusNotFound, ErrItemNotFound.Error(), map[string]any{"id": id})
		return
	}
	kit.WriteMessage(w, http.StatusOK, "Item removed from cart")
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	s.Cart.Clear(r.Context(), uid)
	kit.WriteMessage(w, http.StatusOK, "Cart cleared")
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, err.Error(), nil)
	default:
		s.Log.Error("cart request failed", zap.Error(err), zap.String("path", r.URL.Path))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "not authenticated", nil)
		return 0, false
	}
	return uid, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}
