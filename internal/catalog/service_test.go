package catalog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"ModaVista/internal/catalog"
	"ModaVista/internal/store"
)

func seeded(t *testing.T) *catalog.Service {
	t.Helper()
	s := store.New()
	store.Seed(s, []byte("x"))
	return catalog.NewService(s)
}

func TestFeatured_SortedByRatingAndCapped(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()
	all := svc.ListProducts(ctx)

	for _, n := range []int{1, 3, 4, 8, 20} {
		got := svc.Featured(ctx, n)
		require.LessOrEqual(t, len(got), n)
		require.Len(t, got, min(n, len(all)))

		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Rating, got[i].Rating)
		}

		returned := make(map[int64]bool, len(got))
		lowest := got[len(got)-1].Rating
		for _, p := range got {
			returned[p.ID] = true
		}
		for _, p := range all {
			if !returned[p.ID] {
				assert.LessOrEqual(t, p.Rating, lowest, "unreturned product %d outranks a returned one", p.ID)
			}
		}
	}
}

func TestFeatured_TieBreakByID(t *testing.T) {
	s := store.New()
	for _, slug := range []string{"a", "b", "c"} {
		s.CreateProduct(store.NewProduct{Name: slug, Slug: slug, Rating: 4})
	}
	s.CreateProduct(store.NewProduct{Name: "top", Slug: "top", Rating: 5})

	got := catalog.NewService(s).Featured(context.Background(), 3)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{4, 1, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestFeatured_DefaultLimit(t *testing.T) {
	svc := seeded(t)
	assert.Len(t, svc.Featured(context.Background(), 0), catalog.DefaultLimit)
}

func TestNewArrivals_FlaggedInStoreOrder(t *testing.T) {
	svc := seeded(t)

	got := svc.NewArrivals(context.Background(), 10)
	require.Len(t, got, 5)
	for i, p := range got {
		assert.True(t, p.IsNew)
		if i > 0 {
			assert.Less(t, got[i-1].ID, p.ID)
		}
	}

	assert.Len(t, svc.NewArrivals(context.Background(), 2), 2)
}

func TestListProductsByCategory(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	electronics := svc.ListProductsByCategory(ctx, 3)
	require.Len(t, electronics, 3)
	for _, p := range electronics {
		assert.Equal(t, int64(3), p.CategoryID)
	}

	none := svc.ListProductsByCategory(ctx, 999)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestLookups(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	c, ok := svc.GetCategoryBySlug(ctx, "elektronik")
	require.True(t, ok)
	assert.Equal(t, int64(3), c.ID)

	_, ok = svc.GetCategoryBySlug(ctx, "nope")
	assert.False(t, ok)

	p, ok := svc.GetProductBySlug(ctx, "premium-spor-ayakkabi")
	require.True(t, ok)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(899)))

	_, ok = svc.GetProduct(ctx, 404)
	assert.False(t, ok)
	_, ok = svc.GetCategory(ctx, 404)
	assert.False(t, ok)
}

func TestExportXLSX(t *testing.T) {
	svc := seeded(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), &buf))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	products := f.Sheet["Products"]
	require.NotNil(t, products)
	require.Len(t, products.Rows, 9)
	assert.Equal(t, "Name", products.Rows[0].Cells[1].String())
	assert.Equal(t, "Premium Spor Ayakkabı", products.Rows[1].Cells[1].String())
	assert.Equal(t, "Erkek", products.Rows[1].Cells[3].String())
	assert.Equal(t, "899.00", products.Rows[1].Cells[4].String())

	categories := f.Sheet["Categories"]
	require.NotNil(t, categories)
	assert.Len(t, categories.Rows, 5)
}
