// SPDX-License-Identifier: MIT

// Package api is the operational HTTP surface: health, metrics and a manual
// refresh trigger. Scheduling of refreshes stays outside the daemon.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cabernetwork/provider-video-123tv/internal/jobs"
	"github.com/cabernetwork/provider-video-123tv/internal/log"
	"github.com/cabernetwork/provider-video-123tv/internal/version"
)

// RefreshFunc runs one guide refresh.
type RefreshFunc func(r *http.Request) (*jobs.Status, error)

// Server serializes refresh triggers and remembers the last outcome.
type Server struct {
	refresh RefreshFunc

	mu         sync.Mutex
	refreshing bool
	last       *jobs.Status
}

// NewServer creates the API server around the given refresh runner.
func NewServer(refresh RefreshFunc) *Server {
	return &Server{refresh: refresh}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		// Refreshes are expensive upstream calls; keep the trigger tight.
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/api/refresh", s.handleRefresh)
		r.Get("/api/status", s.handleStatus)
	})

	return r
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponent("api")

	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"error": "refresh already running"})
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	status, err := s.refresh(r)

	s.mu.Lock()
	s.refreshing = false
	if status != nil {
		s.last = status
	}
	s.mu.Unlock()

	if err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, "api.refresh_failed").Msg("manual refresh failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		writeJSON(w, http.StatusOK, map[string]string{"state": "never refreshed"})
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
