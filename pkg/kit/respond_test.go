package kit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type loginBody struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"ok", `{"username":"demo","password":"password123"}`, false},
		{"unknown field", `{"username":"demo","role":"admin"}`, true},
		{"trailing data", `{"username":"demo"}{"x":1}`, true},
		{"not json", `username=demo`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst loginBody
			err := DecodeJSON(rec, req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationDetails_UsesJSONNames(t *testing.T) {
	err := Validate(loginBody{Username: "ab", Password: ""})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	d := ValidationDetails(err)
	if d["username"] != "must be at least 3 characters long" {
		t.Fatalf("username detail=%q", d["username"])
	}
	if d["password"] != "is required" {
		t.Fatalf("password detail=%q", d["password"])
	}

	if got := ValidationDetails(&json.SyntaxError{}); got["payload"] != "invalid json" {
		t.Fatalf("syntax detail=%v", got)
	}
	if got := ValidationDetails(errors.New("boom")); got["payload"] != "invalid payload" {
		t.Fatalf("fallback detail=%v", got)
	}
}

func TestWriteError_Shape(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusNotFound, "not found", map[string]any{"id": "7"})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "not found" {
		t.Fatalf("error=%q", body.Error)
	}
}

func TestMetricsAuth(t *testing.T) {
	h := MetricsAuth("scrape-token")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tc := range []struct {
		header string
		want   int
	}{
		{"", http.StatusForbidden},
		{"Bearer wrong", http.StatusForbidden},
		{"scrape-token", http.StatusForbidden},
		{"Bearer scrape-token", http.StatusOK},
	} {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("header=%q status=%d want=%d", tc.header, rec.Code, tc.want)
		}
	}

	closed := MetricsAuth("")(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	closed.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("empty token must close endpoint, status=%d", rec.Code)
	}
}
