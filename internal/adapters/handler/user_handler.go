package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/auth"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

type UserHandler struct {
	accounts ports.AccountService
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewUserHandler(accounts ports.AccountService, m *metrics.Metrics, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		metrics:  m,
		logger:   logger,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, domain.ErrAuthRequired)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, errBadBody)
		return
	}

	in := ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	}
	if err := h.accounts.CreateUser(r.Context(), in, actor); err != nil {
		h.fail(w, r, "create user", err)
		return
	}

	h.metrics.AccountsTotal.WithLabelValues("create").Inc()
	h.logger.Info("user created", "email", req.Email, "role", req.Role, "actor", actor.Email)
	WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User %s created with role %s", req.Email, req.Role),
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, domain.ErrAuthRequired)
		return
	}

	email := pathParam(r, "email")
	if err := h.accounts.DeleteUser(r.Context(), email, actor); err != nil {
		h.fail(w, r, "delete user", err)
		return
	}

	h.metrics.AccountsTotal.WithLabelValues("delete").Inc()
	h.logger.Info("user deleted", "email", email, "actor", actor.Email)
	WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("User %s deleted", email),
	})
}

// List writes email -> {role, name}. Passwords are never part of the
// response type.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, domain.ErrAuthRequired)
		return
	}

	users, err := h.accounts.ListUsers(r.Context(), actor)
	if err != nil {
		h.fail(w, r, "list users", err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if domain.CodeOf(err) == domain.CodeUnknown {
		h.logger.Error(op, "error", err, "request_id", auth.RequestID(r.Context()))
	}
	WriteError(w, err)
}
