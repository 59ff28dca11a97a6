// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/seolab/kwscout/internal/app"
	"github.com/seolab/kwscout/pkg/logger"
	"github.com/seolab/kwscout/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Researcher is the service dependency required by the HTTP handlers.
type Researcher interface {
	Research(ctx context.Context, req app.Request) (app.Result, error)
}

// Server wires HTTP routes for the research API.
type Server struct {
	researchHandler *ResearchHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(svc Researcher) *Server {
	return &Server{
		researchHandler: NewResearchHandler(svc),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/research", MetricsMiddleware(s.researchHandler.HandleResearch, "research"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// writeJSON encodes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("api").Error(context.Background(), "failed to encode response", logger.Error(err))
	}
}

// writeError sends a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
