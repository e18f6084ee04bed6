package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight HTTP requests may hold up exit.
const shutdownTimeout = 5 * time.Second

// WaitForSignal blocks until SIGINT or SIGTERM, then shuts the server down
// gracefully. Call from the main goroutine after starting the server.
func WaitForSignal(srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
