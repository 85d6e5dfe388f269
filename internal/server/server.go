package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/thetomat/tomat/internal/instrumentation"
)

// Default timeouts for the dashboard HTTP server.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
)

// Server wraps the dashboard HTTP server with timeouts, request
// instrumentation, and graceful shutdown.
type Server struct {
	httpServer *http.Server
	health     *HealthChecker
	metrics    *instrumentation.Metrics
	logger     *slog.Logger
}

// New creates a Server for the given handler. If logger is nil,
// slog.Default() is used.
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		health: NewHealthChecker(),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", s.health.LivenessHandler())
	mux.Handle("/readyz", s.health.ReadinessHandler())
	mux.Handle("/", s.instrument(handler))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	return s
}

// SetMetrics attaches a metrics recorder for per-request instrumentation.
func (s *Server) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// Health returns the health checker for readiness toggling.
func (s *Server) Health() *HealthChecker {
	return s.health
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the server in a blocking manner.
func (s *Server) Start() error {
	s.logger.Info("starting dashboard server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, marking it unready first so
// load balancers drain traffic.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	s.health.SetShuttingDown()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument records request count and duration for every response.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
