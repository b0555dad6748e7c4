// Package server assembles the HTTP router.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mergington/high-school/activities-service/internal/adapters/handler"
	"github.com/mergington/high-school/activities-service/internal/adapters/metrics"
	"github.com/mergington/high-school/activities-service/internal/adapters/middleware"
	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

type Options struct {
	Auth       ports.AuthService
	Enrollment ports.EnrollmentService
	Accounts   ports.AccountService
	Metrics    *metrics.Metrics
	Logger     *slog.Logger

	Version        string
	Checks         map[string]handler.CheckFunc
	AllowedOrigins []string
	StaticDir      string
	CookieSecure   bool
}

func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandler := handler.NewAuthHandler(opts.Auth, opts.Metrics, opts.CookieSecure, logger.With("component", "auth"))
	activityHandler := handler.NewActivityHandler(opts.Enrollment, opts.Metrics, logger.With("component", "activities"))
	userHandler := handler.NewUserHandler(opts.Accounts, opts.Metrics, logger.With("component", "users"))
	healthHandler := handler.NewHealthHandler(opts.Version, opts.Checks, logger.With("component", "health"))
	authMW := middleware.NewAuthMiddleware(opts.Auth, logger.With("component", "auth"))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Instrument(opts.Metrics, logger.With("component", "http")))
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	// Health endpoints (OpenShift compatible)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/ready", healthHandler.Ready)
	r.Get("/health/live", healthHandler.Live)
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
	if opts.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir)))
		r.Handle("/static/*", fs)
	}

	r.Get("/activities", activityHandler.List)
	r.Get("/activities/{name}", activityHandler.Get)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)

		r.Get("/me", authHandler.Me)
		r.Post("/activities/{name}/signup", activityHandler.Signup)
		r.Delete("/activities/{name}/unregister", activityHandler.Unregister)

		r.With(authMW.RequireRole(domain.RoleAdmin, domain.RoleStaff)).Post("/users/create", userHandler.Create)
		r.With(authMW.RequireRole(domain.RoleAdmin, domain.RoleStaff)).Get("/users", userHandler.List)
		r.With(authMW.RequireRole(domain.RoleAdmin)).Delete("/users/{email}", userHandler.Delete)
	})

	return r
}
