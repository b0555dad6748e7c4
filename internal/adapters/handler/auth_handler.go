package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/auth"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	metrics      *metrics.Metrics
	cookieSecure bool
	logger       *slog.Logger
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics, cookieSecure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		metrics:      m,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Role    domain.Role `json:"role"`
	Name    string      `json:"name"`
}

type MeResponse struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Name  string      `json:"name"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, errBadBody)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		} else {
			h.metrics.LoginsTotal.WithLabelValues("error").Inc()
			h.logger.Error("login", "error", err, "request_id", auth.RequestID(r.Context()))
		}
		WriteError(w, err)
		return
	}
	h.metrics.LoginsTotal.WithLabelValues("success").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Role:    user.Role,
		Name:    user.Name,
	})
}

// Logout drops the session named by the cookie, if any, and clears the
// cookie. It succeeds without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), c.Value); err != nil {
			h.logger.Error("logout", "error", err, "request_id", auth.RequestID(r.Context()))
			WriteError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, domain.ErrAuthRequired)
		return
	}
	WriteJSON(w, http.StatusOK, MeResponse{
		Email: user.Email,
		Role:  user.Role,
		Name:  user.Name,
	})
}
