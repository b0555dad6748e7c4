package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/auth"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

var errMissingEmail = domain.NewError(domain.CodeMissingFields, "Missing email query parameter")

type ActivityHandler struct {
	enrollment ports.EnrollmentService
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewActivityHandler(enrollment ports.EnrollmentService, m *metrics.Metrics, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		enrollment: enrollment,
		metrics:    m,
		logger:     logger,
	}
}

// activityCatalog encodes as a JSON object keyed by activity name, in
// catalog order.
type activityCatalog []domain.Activity

func (c activityCatalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c[i].Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// List writes the catalog as an object keyed by activity name.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.enrollment.ListActivities(r.Context())
	if err != nil {
		h.logger.Error("list activities", "error", err, "request_id", auth.RequestID(r.Context()))
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, activityCatalog(activities))
}

func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.enrollment.GetActivity(r.Context(), pathParam(r, "name"))
	if err != nil {
		h.fail(w, r, "get activity", err)
		return
	}
	WriteJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name, email, actor, ok := h.enrollmentParams(w, r)
	if !ok {
		return
	}

	if err := h.enrollment.Signup(r.Context(), name, email, actor); err != nil {
		h.fail(w, r, "signup", err)
		return
	}

	h.metrics.EnrollmentTotal.WithLabelValues("signup").Inc()
	h.logger.Info("signed up", "activity", name, "email", email, "actor", actor.Email)
	WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name, email, actor, ok := h.enrollmentParams(w, r)
	if !ok {
		return
	}

	if err := h.enrollment.Unregister(r.Context(), name, email, actor); err != nil {
		h.fail(w, r, "unregister", err)
		return
	}

	h.metrics.EnrollmentTotal.WithLabelValues("unregister").Inc()
	h.logger.Info("unregistered", "activity", name, "email", email, "actor", actor.Email)
	WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

func (h *ActivityHandler) enrollmentParams(w http.ResponseWriter, r *http.Request) (string, string, *domain.User, bool) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, domain.ErrAuthRequired)
		return "", "", nil, false
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		WriteError(w, errMissingEmail)
		return "", "", nil, false
	}

	return pathParam(r, "name"), email, actor, true
}

func (h *ActivityHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if domain.CodeOf(err) == domain.CodeUnknown {
		h.logger.Error(op, "error", err, "request_id", auth.RequestID(r.Context()))
	}
	WriteError(w, err)
}

// pathParam returns a decoded chi URL parameter. chi routes on RawPath when
// the request has one, leaving escapes in the value; otherwise the value
// comes from the already decoded Path and is returned as is.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
