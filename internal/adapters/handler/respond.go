package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

// SessionCookieName is the HTTP-only cookie that carries the session token.
const SessionCookieName = "session_token"

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string      `json:"detail"`
	Error  domain.Code `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteError maps err to its HTTP status and writes {"detail", "error"}.
func WriteError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	WriteJSON(w, StatusFor(code), ErrorResponse{
		Detail: domain.MessageOf(err),
		Error:  code,
	})
}

func StatusFor(code domain.Code) int {
	switch code {
	case domain.CodeAuthRequired, domain.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyEnrolled, domain.CodeNotEnrolled,
		domain.CodeMissingFields, domain.CodeDuplicate, domain.CodeBadRole:
		return http.StatusBadRequest
	case domain.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var errBadBody = domain.NewError(domain.CodeMissingFields, "Invalid request body")
