package components

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/log"
)

// HTTPServer runs an http.Handler on the configured listen address.
type HTTPServer struct {
	cfg        *config.ServerConfig
	handler    http.Handler
	httpServer *http.Server
	listener   net.Listener
	running    bool
	mu         sync.Mutex
	errCh      chan error
}

// NewHTTPServer creates a new HTTP server component
func NewHTTPServer(cfg *config.ServerConfig, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		cfg:     cfg,
		handler: handler,
		errCh:   make(chan error, 1),
	}
}

func (s *HTTPServer) Name() string {
	return "http-server"
}

// Start binds the listen address and serves requests in the background.
// Bind errors are returned directly; later serve errors are delivered on Err.
func (s *HTTPServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("HTTP server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       seconds(s.cfg.ReadTimeoutSeconds),
		ReadHeaderTimeout: seconds(s.cfg.ReadTimeoutSeconds),
		WriteTimeout:      seconds(s.cfg.WriteTimeoutSeconds),
		IdleTimeout:       seconds(s.cfg.IdleTimeoutSeconds),
	}

	log.Infof("HTTP server listening on http://%s", ln.Addr())

	srv := s.httpServer
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("HTTP server error: %v", err)
			s.errCh <- err
		}
	}()

	s.running = true
	return nil
}

// Stop gracefully shuts the server down, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("HTTP server is not running")
	}

	log.Infof("Stopping HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), seconds(s.cfg.ShutdownTimeoutSeconds))
	defer cancel()

	s.running = false
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
		// Force close if graceful shutdown fails
		if closeErr := s.httpServer.Close(); closeErr != nil {
			return fmt.Errorf("failed to close server: %w", closeErr)
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Infof("HTTP server stopped")
	return nil
}

// Err delivers an error if the server stops serving unexpectedly.
func (s *HTTPServer) Err() <-chan error {
	return s.errCh
}

// Addr returns the bound address, or "" before Start.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns whether the HTTP server is running
func (s *HTTPServer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
