// Package server exposes the watcher over HTTP: Prometheus metrics, a
// JSON snapshot endpoint and a liveness probe, with security and
// request-tracking middleware on every route.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adya/memwatch/internal/broadcast"
	apperrors "github.com/adya/memwatch/internal/errors"
	"github.com/adya/memwatch/internal/logging"
	"github.com/adya/memwatch/internal/observer"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownGrace     = 5 * time.Second
)

// Server serves the watcher's HTTP API.
type Server struct {
	httpServer *http.Server
	engine     *observer.Engine
	hub        *broadcast.Hub
	metrics    *Metrics
	logger     logging.Logger
	security   SecurityConfig
}

// NewServer builds the HTTP surface for the given engine and hub. The
// hub feeds the snapshot gauges while the server runs.
func NewServer(addr string, engine *observer.Engine, hub *broadcast.Hub, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		engine:   engine,
		hub:      hub,
		metrics:  metrics,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.withMiddleware(s.handleMetrics))
	mux.HandleFunc("/snapshot", s.withMiddleware(s.handleSnapshot))
	mux.HandleFunc("/healthz", s.withMiddleware(s.handleHealth))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return s
}

// Run serves until ctx is cancelled, then drains open connections. It
// keeps the snapshot gauges subscribed to the hub for its lifetime.
func (s *Server) Run(ctx context.Context) error {
	cancelFeed := s.hub.SubscribeFunc(s.metrics.Observe)
	defer cancelFeed()

	s.logger.Info("http server listening", logging.String("addr", s.httpServer.Addr))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return apperrors.WrapError(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "shutting down http server")
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return apperrors.WrapError(err, "http server failed")
	}
	s.logger.Info("http server stopped")
	return nil
}

// withMiddleware layers security hardening and request tracking over a
// handler.
func (s *Server) withMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// metricsMiddleware counts requests and tracks in-flight load.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.CountRequest()
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.rejectMethod(w, r)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleSnapshot queries a fresh snapshot and returns it as JSON.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.rejectMethod(w, r)
		return
	}

	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("snapshot query failed", err, logging.String("remote", r.RemoteAddr))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"event":              broadcast.EventName,
		broadcast.PayloadKey: snap,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.rejectMethod(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rejectMethod answers a request whose method the endpoint does not
// support.
func (s *Server) rejectMethod(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("method rejected",
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here only
	// truncates the body.
	_ = json.NewEncoder(w).Encode(v)
}
