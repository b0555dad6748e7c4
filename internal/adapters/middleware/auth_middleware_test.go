package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/high-school/activities-service/internal/adapters/handler"
	"github.com/mergington/high-school/activities-service/internal/adapters/middleware"
	"github.com/mergington/high-school/activities-service/internal/auth"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/services"
	"github.com/mergington/high-school/activities-service/internal/logging"
	"github.com/mergington/high-school/activities-service/test/mocks"
)

func setupAuth(t *testing.T) (*middleware.AuthMiddleware, *mocks.MockSessionRepository, map[domain.Role]string) {
	t.Helper()

	sessions := mocks.NewMockSessionRepository()
	svc := services.NewAuthService(mocks.NewMockUserRepository(mocks.Admin, mocks.Staff, mocks.Student), sessions)

	tokens := make(map[domain.Role]string)
	for _, u := range []domain.User{mocks.Admin, mocks.Staff, mocks.Student} {
		token, _, err := svc.Login(context.Background(), u.Email, u.Password)
		if err != nil {
			t.Fatal(err)
		}
		tokens[u.Role] = token
	}
	return middleware.NewAuthMiddleware(svc, logging.Discard()), sessions, tokens
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(user.Email))
})

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: token})
	}
	return req
}

func TestRequireAuth_NoCookie(t *testing.T) {
	mw, _, _ := setupAuth(t)
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler).ServeHTTP(rec, request(""))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body handler.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != domain.CodeAuthRequired || body.Detail != "Not authenticated" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	mw, _, _ := setupAuth(t)
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler).ServeHTTP(rec, request("forged"))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mw, _, tokens := setupAuth(t)
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler).ServeHTTP(rec, request(tokens[domain.RoleStudent]))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != mocks.Student.Email {
		t.Errorf("expected user in context, got %q", rec.Body.String())
	}
}

func TestRequireAuth_StoreDown(t *testing.T) {
	mw, sessions, tokens := setupAuth(t)
	sessions.GetError = errors.New("connection refused")
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler).ServeHTTP(rec, request(tokens[domain.RoleAdmin]))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		want    int
	}{
		{"admin on admin route", domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, http.StatusOK},
		{"staff on admin route", domain.RoleStaff, []domain.Role{domain.RoleAdmin}, http.StatusForbidden},
		{"staff on staff route", domain.RoleStaff, []domain.Role{domain.RoleAdmin, domain.RoleStaff}, http.StatusOK},
		{"student on staff route", domain.RoleStudent, []domain.Role{domain.RoleAdmin, domain.RoleStaff}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, _, tokens := setupAuth(t)
			h := mw.RequireAuth(mw.RequireRole(tt.allowed...)(okHandler))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, request(tokens[tt.role]))

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	mw, _, _ := setupAuth(t)
	rec := httptest.NewRecorder()

	mw.RequireRole(domain.RoleAdmin)(okHandler).ServeHTTP(rec, request(""))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
