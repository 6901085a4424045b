// Package server serves a loaded knowledge graph over HTTP: the GraphQL endpoint,
// Prometheus metrics and health checks.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/assembly-kg/pkg/health"
	"github.com/dd0wney/assembly-kg/pkg/logging"
)

// DefaultShutdownTimeout bounds the drain of in-flight requests
const DefaultShutdownTimeout = 30 * time.Second

// Config holds configuration for the Server
type Config struct {
	Addr            string
	GraphQL         http.Handler
	Metrics         *prometheus.Registry
	Health          *health.Checker
	Logger          logging.Logger
	ShutdownTimeout time.Duration
	// TLS serves HTTPS when set
	TLS *tls.Config
}

// Server wraps an HTTP server that shuts down gracefully when its context ends
type Server struct {
	server  *http.Server
	tls     *tls.Config
	logger  logging.Logger
	timeout time.Duration
}

// New creates a server with the routes for every handler set in cfg
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	return &Server{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           Routes(cfg),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		tls:     cfg.TLS,
		logger:  logger.With(logging.Component("server")),
		timeout: timeout,
	}
}

// Routes builds the mux: /graphql, /metrics, /livez and /readyz
func Routes(cfg Config) http.Handler {
	mux := http.NewServeMux()
	if cfg.GraphQL != nil {
		mux.Handle("/graphql", cfg.GraphQL)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))
	}
	if cfg.Health != nil {
		mux.Handle("GET /livez", cfg.Health.LivenessHandler())
		mux.Handle("GET /readyz", cfg.Health.ReadinessHandler())
	}
	return mux
}

// Run listens on the configured address and serves until ctx ends
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends, then drains in-flight requests
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.tls != nil {
		ln = tls.NewListener(ln, s.tls)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()
	s.logger.Info("server started",
		logging.String("addr", ln.Addr().String()),
		logging.Bool("tls", s.tls != nil))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", logging.Duration("timeout", s.timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown failed", logging.Error(err))
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
