package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mergington/high-school/activities-service/internal/adapters/handler"
	"github.com/mergington/high-school/activities-service/internal/auth"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
	"github.com/mergington/high-school/activities-service/internal/core/services"
)

type AuthMiddleware struct {
	auth   ports.AuthService
	logger *slog.Logger
}

func NewAuthMiddleware(authService ports.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   authService,
		logger: logger,
	}
}

// RequireAuth resolves the session cookie to a user and stores it in the
// request context. Missing, unknown and stale sessions get 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(handler.SessionCookieName); err == nil {
			token = c.Value
		}

		user, err := m.auth.ResolveSession(r.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrAuthRequired) {
				m.logger.Error("resolve session", "error", err, "request_id", auth.RequestID(r.Context()))
			}
			handler.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

// RequireRole rejects authenticated users whose role is not in roles.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := auth.UserFromContext(r.Context())
			if _, err := services.RequireRole(user, roles...); err != nil {
				if user != nil {
					m.logger.Debug("role mismatch", "required", roles, "role", user.Role, "email", user.Email)
				}
				handler.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
