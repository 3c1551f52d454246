package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/pkg/metrics"
	"github.com/ignite/campaign-insights/internal/session"
)

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, store *session.Store, m *metrics.Metrics) *Server {
	handlers := NewHandlers(store, cfg, m)
	router := SetupRoutes(handlers, cfg.Server.AllowedOrigins, m)

	return &Server{
		config:   cfg.Server,
		handler:  router,
		handlers: handlers,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.handler,
		// Timeouts are generous to support large CSV uploads. Export
		// endpoints render in memory, so writes stay well within this.
		ReadTimeout:       s.config.ReadTimeout(),
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      s.config.WriteTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
