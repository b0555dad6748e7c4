package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

const checkTimeout = 5 * time.Second

// CheckFunc probes one dependency; a nil error means it is reachable.
type CheckFunc func(ctx context.Context) error

type HealthHandler struct {
	checks    map[string]CheckFunc
	startTime time.Time
	version   string
	logger    *slog.Logger
}

func NewHealthHandler(version string, checks map[string]CheckFunc, logger *slog.Logger) *HealthHandler {
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		checks:    checks,
		startTime: time.Now(),
		version:   version,
		logger:    logger,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the Go process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Live is an alias for Health
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// Ready runs every registered check and answers 503 if any is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check, len(h.checks))
	status := "UP"
	httpStatus := http.StatusOK

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := h.run(r.Context(), name, h.checks[name])
		checks[name] = c
		if c.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	WriteJSON(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}

func (h *HealthHandler) run(ctx context.Context, name string, check CheckFunc) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := check(ctx); err != nil {
		h.logger.Warn("readiness check failed", "check", name, "error", err)
		return Check{Status: "DOWN", Message: "Cannot reach " + name}
	}
	return Check{Status: "UP"}
}
