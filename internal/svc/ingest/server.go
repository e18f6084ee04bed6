// Package ingest listens for raw media datagrams over UDP and decodes them
// with the frame codec. It does no protocol parsing of its own: malformed
// datagrams are counted and dropped, valid frames go to the handler.
package ingest

import (
	"errors"
	"fmt"
	"log"
	"net"

	"streamwire/internal/core/protocol/frame"
)

// maxDatagramSize bounds a single receive. UDP payloads cannot exceed 64 KiB.
const maxDatagramSize = 65535

// FrameHandler consumes decoded frames. The frame owns its memory; the
// handler may retain it.
type FrameHandler func(frame.Frame)

// Server is the UDP frame listener.
type Server struct {
	conn    *net.UDPConn
	stats   *Stats
	handler FrameHandler
}

// NewServer creates a listener that hands decoded frames to handler. A nil
// handler only counts traffic.
func NewServer(handler FrameHandler) *Server {
	return &Server{stats: &Stats{}, handler: handler}
}

// Stats returns the listener's counters, safe to read concurrently.
func (s *Server) Stats() *Stats {
	return s.stats
}

// Listen binds the UDP socket. Serve must be called separately.
func (s *Server) Listen(addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", addr, err)
	}
	s.conn, err = net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// Serve reads datagrams until the socket is closed. It returns nil after
// Close and the socket error otherwise.
func (s *Server) Serve() error {
	buf := make([]byte, maxDatagramSize)
	for {
		n, peer, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read datagram: %w", err)
		}

		f, err := frame.Decode(buf[:n])
		if err != nil {
			s.stats.recordMalformed()
			log.Printf("ingest: dropping %d-byte datagram from %s: %v", n, peer, err)
			continue
		}
		s.stats.recordFrame(f)
		if s.handler != nil {
			s.handler(f)
		}
	}
}

// Close shuts the socket down, unblocking Serve.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
