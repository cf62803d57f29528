// Package http is the interactive front end: operators upload the two
// report workbooks, read zone summaries, trigger notifications, and manage
// zone owners. Health, readiness, and metrics endpoints ride along for the
// deployment surface.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulseforge/alarm-report-etl/internal/notify"
	"github.com/pulseforge/alarm-report-etl/internal/pipeline"
	"github.com/pulseforge/alarm-report-etl/internal/summary"
)

// Core is what the handlers need from the aggregation pipeline.
type Core interface {
	IngestReports(ctx context.Context, motion, vibration io.Reader) (pipeline.IngestResult, error)
	Summary(since *time.Time) []summary.ZoneSummary
	Notify(ctx context.Context, req pipeline.NotifyRequest) ([]notify.ZoneOutcome, error)
	UpsertOwner(zone, owner string) error
	Owner(zone string) string
	CheckReadiness(ctx context.Context) error
}

// Server exposes the front-end API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	core       Core
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, core Core, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		core:   core,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/reports", s.handleIngest)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("POST /api/notify", s.handleNotify)
	mux.HandleFunc("PUT /api/registry/{zone}", s.handleUpsertOwner)
	mux.HandleFunc("GET /api/registry/{zone}", s.handleGetOwner)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.core.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
