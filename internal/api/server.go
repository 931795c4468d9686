package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/map-console/mcc/internal/auth"
)

// Server represents the HTTP API server.
type Server struct {
	httpServer     *http.Server
	dispatcher     DispatcherPort
	metricsHandler http.Handler
	authMiddleware *auth.Middleware
	startTime      time.Time
	readTimeout    time.Duration
	idleTimeout    time.Duration
}

// NewServer creates a new API server. authMiddleware may be nil; routes are
// then registered without protection. metricsHandler may be nil to omit
// /metrics. There is no write timeout: the bridge endpoint holds
// connections open past any fixed deadline.
func NewServer(dispatcher DispatcherPort, metricsHandler http.Handler, authMiddleware *auth.Middleware, readTimeout, idleTimeout time.Duration) *Server {
	return &Server{
		dispatcher:     dispatcher,
		metricsHandler: metricsHandler,
		authMiddleware: authMiddleware,
		startTime:      time.Now(),
		readTimeout:    readTimeout,
		idleTimeout:    idleTimeout,
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: s.readTimeout,
		IdleTimeout: s.idleTimeout,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
