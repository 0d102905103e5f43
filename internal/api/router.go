package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/powerconnect/internal/api/middleware"
	"github.com/good-yellow-bee/powerconnect/internal/api/notifications"
	"github.com/good-yellow-bee/powerconnect/internal/api/outages"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	// API v1 routes (read-only, rate limited per IP)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(s.limiter))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			OK(w, IndexResponse{
				Name:    "powerconnect",
				Version: s.config.Version,
				Endpoints: []string{
					"/api/v1/outages",
					"/api/v1/outages/{id}",
					"/api/v1/notifications",
					"/api/v1/feedermap/hit",
				},
			})
		})

		outageHandler := outages.NewHandler(s.storage)
		r.Get("/outages", outageHandler.List)
		r.Get("/outages/{id}", outageHandler.GetByID)
		r.Get("/feedermap/hit", outageHandler.Hit)

		notificationHandler := notifications.NewHandler(s.storage)
		r.Get("/notifications", notificationHandler.List)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, ErrNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			JSONError(w, ErrMethodNotAllowed)
		})
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/live", s.healthHandler.Live)
	r.Get("/health/ready", s.healthHandler.Ready)

	// Web UI
	r.Mount("/", s.web.Routes())

	return r
}
