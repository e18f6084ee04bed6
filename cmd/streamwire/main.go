// Command streamwire runs the wire-protocol service: the UDP frame listener
// plus the HTTP health, API, and stats-monitoring surface.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"streamwire/internal/config"
	"streamwire/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/streamwire.example.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	srv := server.New(cfg)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	if err := server.WaitForSignal(srv); err != nil {
		log.Printf("Shutdown error: %v", err)
		os.Exit(1)
	}
	log.Println("Server shut down cleanly")
}
