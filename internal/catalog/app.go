package catalog

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ModaVista/pkg/kit"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	Catalog *Service
	Log     *zap.Logger
}

// Routes serves the public catalog. Static segments are registered before
// {id} so chi matches them first.
func (s *Server) Routes() http.Handler {
	if s.Log == nil {
		s.Log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Get("/categories", s.listCategories)
	r.Get("/categories/slug/{slug}", s.getCategoryBySlug)
	r.Get("/categories/{id}", s.getCategory)

	r.Get("/products", s.listProducts)
	r.Get("/products/featured", s.featured)
	r.Get("/products/new", s.newArrivals)
	r.Get("/products/export.xlsx", s.export)
	r.Get("/products/slug/{slug}", s.getProductBySlug)
	r.Get("/products/{id}", s.getProduct)

	return r
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Catalog.ListCategories(r.Context()))
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, found := s.Catalog.GetCategory(r.Context(), id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) getCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, found := s.Catalog.GetCategoryBySlug(r.Context(), slug)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "category not found", map[string]any{"slug": slug})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("categoryId")
	if raw == "" {
		kit.WriteJSON(w, http.StatusOK, s.Catalog.ListProducts(r.Context()))
		return
	}

	categoryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid categoryId", map[string]any{"categoryId": raw})
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.ListProductsByCategory(r.Context(), categoryID))
}

func (s *Server) featured(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.Featured(r.Context(), limit))
}

func (s *Server) newArrivals(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.Catalog.NewArrivals(r.Context(), limit))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, found := s.Catalog.GetProduct(r.Context(), id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, found := s.Catalog.GetProductBySlug(r.Context(), slug)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"slug": slug})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.Catalog.ExportXLSX(r.Context(), &buf); err != nil {
		s.Log.Error("catalog export failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=catalog.xlsx")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
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

// queryLimit reads ?limit=, defaulting to DefaultLimit when absent.
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid limit", map[string]any{"limit": raw})
		return 0, false
	}
	return n, true
}
