package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/auth"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an ID, reusing a well-formed inbound
// X-Request-ID and generating a UUID otherwise.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(auth.WithRequestID(r.Context(), id)))
	})
}

// Instrument logs every request and records it in m, labelled by the chi
// route pattern so path parameters do not blow up label cardinality.
func Instrument(m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			elapsed := time.Since(start)

			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"duration", elapsed,
				"request_id", auth.RequestID(r.Context()),
			)
		})
	}
}
