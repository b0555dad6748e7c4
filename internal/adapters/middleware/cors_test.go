package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		wantAllowed string
	}{
		{"wildcard echoes origin", []string{"*"}, "http://localhost:3000", "http://localhost:3000"},
		{"listed origin", []string{"https://school.edu"}, "https://school.edu", "https://school.edu"},
		{"unlisted origin", []string{"https://school.edu"}, "https://evil.example", ""},
		{"no origin", []string{"*"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(noContent).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowed {
				t.Errorf("expected allow-origin %q, got %q", tt.wantAllowed, got)
			}
			if tt.wantAllowed != "" && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("expected credentials to be allowed")
			}
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/activities/Chess%20Club/signup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	CORSMiddleware([]string{"*"})(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
}
