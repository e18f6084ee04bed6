package session

import (
	"net"
	"testing"
	"time"

	"streamwire/internal/core/protocol/rtmp"
)

func TestServerNegotiatesHandshake(t *testing.T) {
	srv := NewServer()
	if err := srv.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer srv.Close()
	go srv.Accept()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if err := rtmp.PerformClientHandshake(conn, nil); err != nil {
		t.Fatalf("client handshake failed: %v", err)
	}
}

func TestServerDropsBadVersion(t *testing.T) {
	srv := NewServer()
	if err := srv.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer srv.Close()
	go srv.Accept()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	// A non-RTMP first byte plus a full-size block: the server must close
	// the connection rather than answer.
	junk := make([]byte, 1+rtmp.HandshakeBlockSize)
	junk[0] = 0x16 // looks like a TLS ClientHello
	if _, err := conn.Write(junk); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := conn.Read(buf); err == nil {
		t.Errorf("server answered %d bytes to a non-RTMP peer", n)
	}
}

func TestServerCloseStopsAccept(t *testing.T) {
	srv := NewServer()
	if err := srv.Listen("127.0.0.1:0"); err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Accept() }()

	if err := srv.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Accept returned %v after Close, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Accept did not return after Close")
	}
}
