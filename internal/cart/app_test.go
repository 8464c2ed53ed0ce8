package cart_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ModaVista/internal/auth"
	"ModaVista/internal/cart"
	"ModaVista/internal/store"
)

const userHeader = "X-Test-User"

// asUser stands in for auth.RequireUser: it trusts a test header.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		uid, _ := strconv.ParseInt(raw, 10, 64)
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{UserID: uid, SessionID: "test"})))
	})
}

func newCartTS(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New()
	store.Seed(st, []byte("hash"))

	srv := &cart.Server{Cart: cart.NewService(st, nil, nil)}
	ts := httptest.NewServer(asUser(srv.Routes()))
	t.Cleanup(ts.Close)
	return ts, st
}

func call(t *testing.T, method, url, user string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set(userHeader, user)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestCartRoutes_AddListSummary(t *testing.T) {
	ts, _ := newCartTS(t)

	code, raw := call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 1, "quantity": 3})
	require.Equal(t, http.StatusCreated, code, string(raw))

	code, raw = call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 1, "quantity": 2})
	require.Equal(t, http.StatusCreated, code, string(raw))

	var item store.CartItem
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, 5, item.Quantity)

	code, raw = call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 2})
	require.Equal(t, http.StatusCreated, code, string(raw))
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, 1, item.Quantity, "quantity defaults to 1")

	code, raw = call(t, http.MethodGet, ts.URL+"/", "1", nil)
	require.Equal(t, http.StatusOK, code, string(raw))

	var lines []struct {
		ID        int64 `json:"id"`
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
		Product   struct {
			ID    int64   `json:"id"`
			Price float64 `json:"price"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(raw, &lines))
	require.Len(t, lines, 2)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 899.0, lines[0].Product.Price)

	code, raw = call(t, http.MethodGet, ts.URL+"/summary", "1", nil)
	require.Equal(t, http.StatusOK, code, string(raw))

	var sum struct {
		TotalItems int     `json:"totalItems"`
		TotalPrice float64 `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(raw, &sum))
	assert.Equal(t, 6, sum.TotalItems)
	assert.Equal(t, 4495.0+1249.0, sum.TotalPrice)
}

func TestCartRoutes_Errors(t *testing.T) {
	ts, _ := newCartTS(t)

	for _, tc := range []struct {
		name   string
		method string
		path   string
		user   string
		body   any
		want   int
	}{
		{"anonymous", http.MethodGet, "/", "", nil, http.StatusUnauthorized},
		{"unknown product", http.MethodPost, "/", "1", map[string]any{"productId": 999}, http.StatusNotFound},
		{"zero quantity", http.MethodPost, "/", "1", map[string]any{"productId": 1, "quantity": 0}, http.StatusBadRequest},
		{"missing product", http.MethodPost, "/", "1", map[string]any{"quantity": 1}, http.StatusBadRequest},
		{"huge quantity", http.MethodPost, "/", "1", map[string]any{"productId": 1, "quantity": math.MaxInt}, http.StatusBadRequest},
		{"update zero", http.MethodPut, "/42", "1", map[string]any{"quantity": 0}, http.StatusBadRequest},
		{"update huge", http.MethodPut, "/42", "1", map[string]any{"quantity": math.MaxInt}, http.StatusBadRequest},
		{"bad id", http.MethodPut, "/abc", "1", map[string]any{"quantity": 1}, http.StatusBadRequest},
		{"update missing", http.MethodPut, "/42", "1", map[string]any{"quantity": 1}, http.StatusNotFound},
		{"remove missing", http.MethodDelete, "/42", "1", nil, http.StatusNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			code, raw := call(t, tc.method, ts.URL+tc.path, tc.user, tc.body)
			assert.Equal(t, tc.want, code, string(raw))
		})
	}
}

func TestCartRoutes_OwnershipUpdateRemoveClear(t *testing.T) {
	ts, st := newCartTS(t)

	code, raw := call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 3, "quantity": 1})
	require.Equal(t, http.StatusCreated, code, string(raw))
	var item store.CartItem
	require.NoError(t, json.Unmarshal(raw, &item))
	itemURL := ts.URL + "/" + strconv.FormatInt(item.ID, 10)

	code, _ = call(t, http.MethodPut, itemURL, "2", map[string]any{"quantity": 9})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = call(t, http.MethodDelete, itemURL, "2", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, raw = call(t, http.MethodPut, itemURL, "1", map[string]any{"quantity": 4})
	require.Equal(t, http.StatusOK, code, string(raw))
	require.NoError(t, json.Unmarshal(raw, &item))
	assert.Equal(t, 4, item.Quantity)

	code, _ = call(t, http.MethodDelete, itemURL, "1", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 4})
	require.Equal(t, http.StatusCreated, code)

	code, _ = call(t, http.MethodDelete, ts.URL+"/", "1", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, http.MethodDelete, ts.URL+"/", "1", nil)
	assert.Equal(t, http.StatusOK, code)

	assert.Empty(t, findCartItems(st, nil))
}

func TestCartRoutes_MergePastMaxIsRejected(t *testing.T) {
	ts, st := newCartTS(t)

	code, raw := call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 1, "quantity": cart.MaxQuantity})
	require.Equal(t, http.StatusCreated, code, string(raw))

	code, raw = call(t, http.MethodPost, ts.URL+"/", "1", map[string]any{"productId": 1, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, code, string(raw))

	rows := findCartItems(st, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, cart.MaxQuantity, rows[0].Quantity)
}
