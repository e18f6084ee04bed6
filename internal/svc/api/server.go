// Package api exposes read-only server state over HTTP. Handlers are fast
// and never touch the ingest path.
package api

import (
	"net/http"
	"time"

	"streamwire/internal/svc/ingest"
)

// StatsSource supplies ingest counters for the stats endpoint.
type StatsSource interface {
	Snapshot() ingest.Snapshot
}

// Service provides the HTTP API.
type Service struct {
	stats     StatsSource
	startTime int64
}

// NewService creates the API service.
func NewService(stats StatsSource) *Service {
	return &Service{
		stats:     stats,
		startTime: getCurrentTime(),
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/server", s.handleServer)
	mux.HandleFunc("/api/stats", s.handleStats)
}

// getCurrentTime returns the current Unix timestamp. Extracted for
// testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}
