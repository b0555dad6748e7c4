package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   domain.Code
		wantDetail string
	}{
		{"auth required", domain.ErrAuthRequired, http.StatusUnauthorized, domain.CodeAuthRequired, "Not authenticated"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, domain.CodeInvalidCredentials, "Invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, domain.CodeForbidden, "Insufficient permissions"},
		{"not found", domain.NewError(domain.CodeNotFound, "Activity not found"), http.StatusNotFound, domain.CodeNotFound, "Activity not found"},
		{"already enrolled", domain.ErrAlreadyEnrolled, http.StatusBadRequest, domain.CodeAlreadyEnrolled, "Student is already signed up"},
		{"not enrolled", domain.ErrNotEnrolled, http.StatusBadRequest, domain.CodeNotEnrolled, "Student is not signed up for this activity"},
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, domain.CodeMissingFields, "Missing user fields"},
		{"duplicate", domain.ErrDuplicate, http.StatusBadRequest, domain.CodeDuplicate, "User already exists"},
		{"bad role", domain.ErrBadRole, http.StatusBadRequest, domain.CodeBadRole, "Invalid role"},
		{"unavailable", fmt.Errorf("%w: circuit open", domain.ErrUnavailable), http.StatusServiceUnavailable, domain.CodeUnavailable, "Service temporarily unavailable"},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, domain.CodeUnknown, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.wantCode || body.Detail != tt.wantDetail {
				t.Errorf("unexpected body %+v", body)
			}
		})
	}
}
