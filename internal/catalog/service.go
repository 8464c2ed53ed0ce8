package catalog

import (
	"cmp"
	"context"
	"slices"

	"ModaVista/internal/store"
)

const DefaultLimit = 4

type Service struct {
	Store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

func (s *Service) ListCategories(ctx context.Context) []store.Category {
	return s.Store.FindCategories(nil)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (store.Category, bool) {
	return s.Store.GetCategory(id)
}

func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (store.Category, bool) {
	found := s.Store.FindCategories(func(c store.Category) bool { return c.Slug == slug })
	if len(found) == 0 {
		return store.Category{}, false
	}
	return found[0], true
}

func (s *Service) ListProducts(ctx context.Context) []store.Product {
	return s.Store.FindProducts(nil)
}

// ListProductsByCategory does not check that the category exists.
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID int64) []store.Product {
	return s.Store.FindProducts(func(p store.Product) bool { return p.CategoryID == categoryID })
}

func (s *Service) GetProduct(ctx context.Context, id int64) (store.Product, bool) {
	return s.Store.GetProduct(id)
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (store.Product, bool) {
	found := s.Store.FindProducts(func(p store.Product) bool { return p.Slug == slug })
	if len(found) == 0 {
		return store.Product{}, false
	}
	return found[0], true
}

// Featured returns the highest rated products. Equal ratings keep id order.
func (s *Service) Featured(ctx context.Context, limit int) []store.Product {
	products := s.Store.FindProducts(nil)
	slices.SortStableFunc(products, func(a, b store.Product) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return truncate(products, limit)
}

// NewArrivals returns products flagged new, in store order. There is no
// creation timestamp to sort by.
func (s *Service) NewArrivals(ctx context.Context, limit int) []store.Product {
	return truncate(s.Store.FindProducts(func(p store.Product) bool { return p.IsNew }), limit)
}

func truncate(ps []store.Product, limit int) []store.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(ps) > limit {
		return ps[:limit]
	}
	return ps
}
