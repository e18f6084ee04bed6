// Package session accepts TCP connections and runs the three-step
// handshake. Command and media processing beyond session establishment is
// not handled here; established connections are drained until the peer
// closes.
package session

import (
	"errors"
	"io"
	"log"
	"net"

	"streamwire/internal/core/protocol/rtmp"
)

// Server accepts and negotiates sessions.
type Server struct {
	listener net.Listener
}

// NewServer creates an unbound session server.
func NewServer() *Server {
	return &Server{}
}

// Listen binds the TCP socket. Accept must be called separately.
func (s *Server) Listen(addr string) error {
	var err error
	s.listener, err = net.Listen("tcp", addr)
	return err
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Accept handles connections until the listener is closed. It returns nil
// after Close and the listener error otherwise.
func (s *Server) Accept() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.handleConnection(conn)
	}
}

// handleConnection negotiates one session. A failed handshake drops the
// connection; retry policy belongs to the peer.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("session: error closing connection: %v", err)
		}
	}()

	if err := rtmp.PerformServerHandshake(conn, nil); err != nil {
		if errors.Is(err, rtmp.ErrHandshake) {
			// Not an RTMP peer; drop quietly.
			return
		}
		log.Printf("session: handshake with %s failed: %v", conn.RemoteAddr(), err)
		return
	}
	log.Printf("session: established with %s", conn.RemoteAddr())

	// Hold the session open until the peer goes away.
	_, _ = io.Copy(io.Discard, conn)
}

// Close shuts the listener down, unblocking Accept. Connections already
// established drain on their own.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
