// Package monitor streams ingest statistics to WebSocket clients. Each
// connection gets an immediate snapshot and then periodic updates until the
// client goes away.
package monitor

import (
	"net/http"
	"time"

	"streamwire/internal/svc/ingest"

	"github.com/gorilla/websocket"
)

// StatsSource supplies the snapshots pushed to clients.
type StatsSource interface {
	Snapshot() ingest.Snapshot
}

// Handler upgrades /ws/stats requests and pushes snapshots.
type Handler struct {
	source   StatsSource
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewHandler creates a handler pushing a snapshot every interval.
func NewHandler(source StatsSource, interval time.Duration) *Handler {
	return &Handler{
		source:   source,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Monitoring endpoint, same trust domain as the API.
				return true
			},
		},
	}
}

// ServeHTTP handles one monitoring client.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	// Drain client frames so close and ping handling keep working, and so
	// a disconnect ends the push loop promptly.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(h.source.Snapshot()); err != nil {
			return
		}
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

// RegisterRoutes registers the monitoring endpoint on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/stats", h.ServeHTTP)
}
