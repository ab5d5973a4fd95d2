// Package server exposes the frontend-facing career API through the
// degraded-mode gateway, plus health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tamkeenai/careerd/internal/audit"
	"github.com/tamkeenai/careerd/internal/core/domain"
	"github.com/tamkeenai/careerd/internal/gateway"
	"github.com/tamkeenai/careerd/internal/upstream"
)

// Fixture keys per route.
const (
	ResourceJobs      = "jobs.search"
	ResourceDashboard = "dashboard"
)

// RecentLister lists recent fallback events for the admin surface.
type RecentLister interface {
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Server fronts the career backend, answering from fixtures when degraded.
type Server struct {
	gw             *gateway.Gateway
	upstream       *upstream.Client
	recent         RecentLister
	warnOnFallback bool
	server         *http.Server
	log            *slog.Logger
}

// New creates a new API server. recent may be nil when no database is
// configured.
func New(port int, gw *gateway.Gateway, up *upstream.Client, recent RecentLister, warnOnFallback bool) *Server {
	mux := http.NewServeMux()
	s := &Server{
		gw:             gw,
		upstream:       up,
		recent:         recent,
		warnOnFallback: warnOnFallback,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		log: slog.Default(),
	}

	mux.HandleFunc("/api/jobs", s.handleJobs)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/admin/fallbacks", s.handleFallbacks)
	mux.HandleFunc("/admin/circuit/reset", s.handleCircuitReset)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return s
}

// Handler returns the HTTP handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)
	remote := gateway.RemoteFunc(func(ctx context.Context, q domain.Query) (any, error) {
		return s.upstream.Get(ctx, "/api/jobs", q)
	})

	env := s.gw.Call(r.Context(), remote, gateway.Resource{Key: ResourceJobs}, q,
		gateway.Options{WarnOnFallback: s.warnOnFallback})
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)
	remote := gateway.RemoteFunc(func(ctx context.Context, q domain.Query) (any, error) {
		return s.upstream.Get(ctx, "/api/dashboard", q)
	})

	env := s.gw.Call(r.Context(), remote, gateway.Resource{Key: ResourceDashboard}, q,
		gateway.Options{WarnOnFallback: s.warnOnFallback})
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleFallbacks(w http.ResponseWriter, r *http.Request) {
	if s.recent == nil {
		http.Error(w, "audit log not configured", http.StatusNotFound)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := s.recent.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list fallback events", "error", err)
		http.Error(w, "failed to list fallback events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleCircuitReset force-closes the circuit, for operators who know the
// backend has recovered before the cooldown elapses.
func (s *Server) handleCircuitReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.gw.Breaker().Reset(r.Context())
	s.log.Info("Circuit reset by operator")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleHealth reports degraded while the circuit is open. Degraded is not a
// failure: the service still answers every request from fixtures, so the
// status code stays 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if s.gw.Degraded(r.Context()) {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func parseQuery(r *http.Request) domain.Query {
	vals := r.URL.Query()
	q := domain.Query{
		Search:   vals.Get("search"),
		Location: vals.Get("location"),
	}
	q.Page, _ = strconv.Atoi(vals.Get("page"))
	q.PageSize, _ = strconv.Atoi(vals.Get("pageSize"))
	return q
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
