// Package api provides the HTTP server: JSON API, health endpoints and the
// mounted web UI.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/actions"
	"github.com/good-yellow-bee/powerconnect/internal/api/health"
	"github.com/good-yellow-bee/powerconnect/internal/api/middleware"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
	"github.com/good-yellow-bee/powerconnect/internal/web"
)

// Config contains HTTP server configuration.
type Config struct {
	Address          string
	CSRFSecret       string // For web UI CSRF protection
	UseSecureCookies bool   // Use Secure flag for cookies (true behind HTTPS)
	RateLimitPerIP   int    // API requests per minute per client IP
	MapWidth         int
	MapHeight        int
	Version          string
	Verbose          bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RateLimitPerIP == 0 {
		c.RateLimitPerIP = 120
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}

// Server is the HTTP server.
type Server struct {
	config        *Config
	storage       storage.Storage
	web           *web.Server
	actions       *actions.Service
	toasts        *toast.Queue
	limiter       *middleware.RateLimiter
	server        *http.Server
	healthHandler *health.Handler
}

// New creates a new HTTP server.
func New(cfg *Config, store storage.Storage, svc *actions.Service, toasts *toast.Queue) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if svc == nil {
		return nil, fmt.Errorf("action service is required")
	}
	if len(cfg.CSRFSecret) < 32 {
		return nil, fmt.Errorf("CSRF secret must be at least 32 bytes")
	}

	cfg.SetDefaults()

	webServer := web.NewServer(store, svc, toasts, cfg.CSRFSecret, cfg.UseSecureCookies)
	webServer.Handler().SetMapSize(cfg.MapWidth, cfg.MapHeight)

	s := &Server{
		config:        cfg,
		storage:       store,
		web:           webServer,
		actions:       svc,
		toasts:        toasts,
		limiter:       middleware.NewRateLimiter(cfg.RateLimitPerIP),
		healthHandler: health.NewHandler(cfg.Version),
	}
	s.healthHandler.RegisterChecker(health.NewStorageChecker(store))

	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP listening on %s", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("shutting down HTTP server...")
			s.web.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.server.Shutdown(shutdownCtx)
		case err := <-errChan:
			s.web.Close()
			return err
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup evicts idle per-client state: API and action rate limiters, and
// toasts nobody collected.
func (s *Server) cleanup() {
	s.limiter.Cleanup()
	s.actions.Cleanup()
	if s.toasts != nil {
		s.toasts.Cleanup()
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}

// RegisterHealthChecker adds a health checker to the server.
func (s *Server) RegisterHealthChecker(c health.Checker) {
	if s.healthHandler != nil {
		s.healthHandler.RegisterChecker(c)
	}
}
