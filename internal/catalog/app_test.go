package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ModaVista/internal/catalog"
	"ModaVista/internal/store"
)

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := store.New()
	store.Seed(s, []byte("x"))

	srv := &catalog.Server{Catalog: catalog.NewService(s)}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestCatalogRoutes(t *testing.T) {
	ts := newCatalogTS(t)

	var categories []store.Category
	if code := getJSON(t, ts.URL+"/categories", &categories); code != http.StatusOK || len(categories) != 4 {
		t.Fatalf("categories status=%d len=%d", code, len(categories))
	}

	var c store.Category
	if code := getJSON(t, ts.URL+"/categories/1", &c); code != http.StatusOK || c.Name != "Erkek" {
		t.Fatalf("category status=%d name=%q", code, c.Name)
	}
	if code := getJSON(t, ts.URL+"/categories/slug/kadin", &c); code != http.StatusOK || c.ID != 2 {
		t.Fatalf("category by slug status=%d id=%d", code, c.ID)
	}

	var products []store.Product
	if code := getJSON(t, ts.URL+"/products?categoryId=1", &products); code != http.StatusOK || len(products) != 2 {
		t.Fatalf("products by category status=%d len=%d", code, len(products))
	}
	if code := getJSON(t, ts.URL+"/products?categoryId=77", &products); code != http.StatusOK || len(products) != 0 {
		t.Fatalf("unknown category status=%d len=%d", code, len(products))
	}
	if code := getJSON(t, ts.URL+"/products/featured", &products); code != http.StatusOK || len(products) != 4 {
		t.Fatalf("featured status=%d len=%d", code, len(products))
	}
	if code := getJSON(t, ts.URL+"/products/new?limit=2", &products); code != http.StatusOK || len(products) != 2 {
		t.Fatalf("new status=%d len=%d", code, len(products))
	}

	var p store.Product
	if code := getJSON(t, ts.URL+"/products/6", &p); code != http.StatusOK || p.Slug != "ultra-x-akilli-telefon" {
		t.Fatalf("product status=%d slug=%q", code, p.Slug)
	}
	if code := getJSON(t, ts.URL+"/products/slug/modern-sandalye", &p); code != http.StatusOK || p.ID != 7 {
		t.Fatalf("product by slug status=%d id=%d", code, p.ID)
	}
}

func TestCatalogRoutes_Errors(t *testing.T) {
	ts := newCatalogTS(t)

	for _, tc := range []struct {
		path string
		want int
	}{
		{"/categories/99", http.StatusNotFound},
		{"/categories/abc", http.StatusBadRequest},
		{"/categories/slug/none", http.StatusNotFound},
		{"/products/99", http.StatusNotFound},
		{"/products/abc", http.StatusBadRequest},
		{"/products/slug/none", http.StatusNotFound},
		{"/products?categoryId=x", http.StatusBadRequest},
		{"/products/featured?limit=-1", http.StatusBadRequest},
		{"/products/new?limit=x", http.StatusBadRequest},
	} {
		if code := getJSON(t, ts.URL+tc.path, nil); code != tc.want {
			t.Fatalf("%s status=%d want=%d", tc.path, code, tc.want)
		}
	}
}

func TestCatalogRoutes_Export(t *testing.T) {
	ts := newCatalogTS(t)

	resp, err := http.Get(ts.URL + "/products/export.xlsx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content-type=%q", ct)
	}
}

func TestRoutes_DefaultsLogger(t *testing.T) {
	srv := &catalog.Server{Catalog: catalog.NewService(store.New())}
	_ = srv.Routes()
	if srv.Log == nil {
		t.Fatalf("Routes must install a logger")
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	if code := getJSON(t, ts.URL+"/products/export.xlsx", nil); code != http.StatusOK {
		t.Fatalf("export status=%d", code)
	}
}
