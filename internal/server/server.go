// Package server ties the HTTP surface and the UDP ingest listener into one
// process lifecycle.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"streamwire/internal/config"
	"streamwire/internal/svc/api"
	"streamwire/internal/svc/health"
	"streamwire/internal/svc/ingest"
	"streamwire/internal/svc/monitor"
	"streamwire/internal/svc/session"
)

// Server wraps the HTTP server, the ingest and session listeners, and
// their wiring.
type Server struct {
	httpServer  *http.Server
	ingestSrv   *ingest.Server
	ingestAddr  string
	sessionSrv  *session.Server
	sessionAddr string
}

// New creates a server from the configuration. Nothing listens until Start.
func New(cfg *config.Config) *Server {
	ingestSrv := ingest.NewServer(nil)

	mux := http.NewServeMux()
	health.New().RegisterRoutes(mux)
	api.NewService(ingestSrv.Stats()).RegisterRoutes(mux)
	interval := time.Duration(cfg.Monitor.PushIntervalMS) * time.Millisecond
	monitor.NewHandler(ingestSrv.Stats(), interval).RegisterRoutes(mux)

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: mux,
		},
		ingestSrv:   ingestSrv,
		ingestAddr:  fmt.Sprintf(":%d", cfg.Ingest.UDPPort),
		sessionSrv:  session.NewServer(),
		sessionAddr: fmt.Sprintf(":%d", cfg.Session.TCPPort),
	}
}

// Start binds the ingest and session sockets, runs their loops, and then
// blocks serving HTTP until the server is stopped.
func (s *Server) Start() error {
	if err := s.ingestSrv.Listen(s.ingestAddr); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := s.sessionSrv.Listen(s.sessionAddr); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	go func() {
		if err := s.ingestSrv.Serve(); err != nil {
			log.Printf("Ingest listener error: %v", err)
		}
	}()
	go func() {
		if err := s.sessionSrv.Accept(); err != nil {
			log.Printf("Session listener error: %v", err)
		}
	}()
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listeners and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.ingestSrv.Close(); err != nil {
		log.Printf("Error closing ingest listener: %v", err)
	}
	if err := s.sessionSrv.Close(); err != nil {
		log.Printf("Error closing session listener: %v", err)
	}
	return s.httpServer.Shutdown(ctx)
}
