// Package http serves the dashboard API: scored county views, aggregate
// endpoints for the map and charts, CSV export, and the operational
// health/readiness/metrics routes.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cookjwelch/golf-market-explorer/internal/analytics"
	"github.com/cookjwelch/golf-market-explorer/internal/config"
	"github.com/cookjwelch/golf-market-explorer/internal/export"
	"github.com/cookjwelch/golf-market-explorer/internal/pipeline"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	explorer   *pipeline.Explorer
	presets    []config.WeightPreset
	logger     *slog.Logger
}

// NewServer creates the API server. presets may come from the built-in set
// or a configured YAML file.
func NewServer(addr string, explorer *pipeline.Explorer, presets []config.WeightPreset, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		explorer: explorer,
		presets:  presets,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/counties", s.handleCounties)
	mux.HandleFunc("GET /api/states", s.handleStates)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/presets", s.handlePresets)
	mux.HandleFunc("GET /api/export", s.handleExport)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(explorer))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleCounties(w http.ResponseWriter, r *http.Request) {
	req, limit, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view := s.explorer.Explore(req)
	counties := analytics.TopN(view.Counties, limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(counties),
		"total":     len(view.Counties),
		"scored_at": view.ScoredAt,
		"counties":  counties,
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view := s.explorer.Explore(req)
	writeJSON(w, http.StatusOK, map[string]any{
		"scored_at": view.ScoredAt,
		"states":    view.States,
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view := s.explorer.Explore(req)
	writeJSON(w, http.StatusOK, map[string]any{
		"scored_at": view.ScoredAt,
		"regions":   view.Regions,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req, _, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view := s.explorer.Explore(req)
	writeJSON(w, http.StatusOK, map[string]any{
		"scored_at":           view.ScoredAt,
		"summary":             view.Summary,
		"degenerate_factors":  view.Degenerate,
		"affluence_threshold": s.explorer.Store().AffluenceThreshold(),
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"presets": s.presets})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, limit, err := s.parseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view := s.explorer.Explore(req)
	counties := analytics.TopN(view.Counties, limit)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "golf_market_filtered.csv"))
	if err := export.WriteCSV(w, counties); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error("export write failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
