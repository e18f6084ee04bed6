package rtmp

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Stage is the negotiator's position in the three-step exchange.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingPeerHello
	StageAwaitingPeerEcho
	StageEstablished
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAwaitingPeerHello:
		return "awaiting-peer-hello"
	case StageAwaitingPeerEcho:
		return "awaiting-peer-echo"
	case StageEstablished:
		return "established"
	case StageFailed:
		return "failed"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Negotiator drives one side of the handshake for a single connection. Both
// sides run the same machine; only the C/S naming of the blocks differs.
// It performs no I/O and no retries: a transport feeds it the peer's bytes
// and writes out what it returns, and any validation error is terminal.
type Negotiator struct {
	random io.Reader
	stage  Stage
	hello  []byte // our generated block, kept to verify the peer's echo
}

// NewNegotiator returns a negotiator in the Idle stage. The random source
// supplies the 1528 hello bytes; pass nil for crypto/rand. A deterministic
// reader makes the exchange reproducible under test.
func NewNegotiator(random io.Reader) *Negotiator {
	if random == nil {
		random = rand.Reader
	}
	return &Negotiator{random: random, stage: StageIdle}
}

// Stage returns the current stage.
func (n *Negotiator) Stage() Stage {
	return n.stage
}

// VersionByte returns the C0/S0 byte.
func (n *Negotiator) VersionByte() byte {
	return RTMPVersion
}

// ValidateVersion checks the peer's C0/S0 byte. Anything but the constant
// protocol version fails the handshake.
func (n *Negotiator) ValidateVersion(b byte) error {
	if b != RTMPVersion {
		return n.fail(fmt.Errorf("%w: peer version 0x%02x, want 0x%02x", ErrHandshake, b, RTMPVersion))
	}
	return nil
}

// GenerateHello produces our C1/S1 block: 4 zero time bytes, 4 zero reserved
// bytes, 1528 bytes from the random source. It moves Idle to
// AwaitingPeerHello and keeps a copy for echo verification.
func (n *Negotiator) GenerateHello() ([]byte, error) {
	if n.stage != StageIdle {
		return nil, n.fail(fmt.Errorf("%w: hello generated in stage %s", ErrHandshake, n.stage))
	}
	block := make([]byte, HandshakeBlockSize)
	if _, err := io.ReadFull(n.random, block[handshakeRandomOff:]); err != nil {
		return nil, n.fail(fmt.Errorf("%w: random source: %v", ErrHandshake, err))
	}
	n.hello = block
	n.stage = StageAwaitingPeerHello
	out := make([]byte, HandshakeBlockSize)
	copy(out, block)
	return out, nil
}

// ValidateAndEcho consumes the peer's C1/S1 and produces our C2/S2: the
// peer's time field, our receive time, and the peer's 1528 random bytes
// echoed back unchanged. It moves AwaitingPeerHello to AwaitingPeerEcho.
func (n *Negotiator) ValidateAndEcho(peerHello []byte) ([]byte, error) {
	if n.stage != StageAwaitingPeerHello {
		return nil, n.fail(fmt.Errorf("%w: peer hello in stage %s", ErrHandshake, n.stage))
	}
	if len(peerHello) != HandshakeBlockSize {
		return nil, n.fail(fmt.Errorf("%w: peer hello is %d bytes, want %d", ErrHandshake, len(peerHello), HandshakeBlockSize))
	}
	echo := make([]byte, HandshakeBlockSize)
	copy(echo, peerHello)
	binary.BigEndian.PutUint32(echo[4:8], uint32(time.Now().Unix()))
	n.stage = StageAwaitingPeerEcho
	return echo, nil
}

// VerifyEcho consumes the peer's C2/S2 and checks that it echoes the random
// bytes of our hello exactly. On success the negotiator is Established.
func (n *Negotiator) VerifyEcho(peerEcho []byte) error {
	if n.stage != StageAwaitingPeerEcho {
		return n.fail(fmt.Errorf("%w: peer echo in stage %s", ErrHandshake, n.stage))
	}
	if len(peerEcho) != HandshakeBlockSize {
		return n.fail(fmt.Errorf("%w: peer echo is %d bytes, want %d", ErrHandshake, len(peerEcho), HandshakeBlockSize))
	}
	if !bytes.Equal(peerEcho[handshakeRandomOff:], n.hello[handshakeRandomOff:]) {
		return n.fail(fmt.Errorf("%w: peer echo does not match our hello", ErrHandshake))
	}
	n.stage = StageEstablished
	return nil
}

// fail marks the negotiator terminally failed. Every later call keeps
// failing; the caller is expected to drop the connection.
func (n *Negotiator) fail(err error) error {
	n.stage = StageFailed
	return err
}

// PerformServerHandshake runs the server side of the exchange over a
// blocking transport: read C0/C1, send S0/S1/S2, read and verify C2. Pass a
// nil random source for crypto/rand.
func PerformServerHandshake(conn io.ReadWriter, random io.Reader) error {
	n := NewNegotiator(random)

	var c0 [1]byte
	if _, err := io.ReadFull(conn, c0[:]); err != nil {
		return fmt.Errorf("read c0: %w", err)
	}
	if err := n.ValidateVersion(c0[0]); err != nil {
		return err
	}
	c1 := make([]byte, HandshakeBlockSize)
	if _, err := io.ReadFull(conn, c1); err != nil {
		return fmt.Errorf("read c1: %w", err)
	}

	s1, err := n.GenerateHello()
	if err != nil {
		return err
	}
	s2, err := n.ValidateAndEcho(c1)
	if err != nil {
		return err
	}
	if _, err := conn.Write([]byte{n.VersionByte()}); err != nil {
		return fmt.Errorf("write s0: %w", err)
	}
	if _, err := conn.Write(s1); err != nil {
		return fmt.Errorf("write s1: %w", err)
	}
	if _, err := conn.Write(s2); err != nil {
		return fmt.Errorf("write s2: %w", err)
	}

	c2 := make([]byte, HandshakeBlockSize)
	if _, err := io.ReadFull(conn, c2); err != nil {
		return fmt.Errorf("read c2: %w", err)
	}
	return n.VerifyEcho(c2)
}

// PerformClientHandshake runs the client side of the exchange: send C0/C1,
// read S0/S1/S2, send C2.
func PerformClientHandshake(conn io.ReadWriter, random io.Reader) error {
	n := NewNegotiator(random)

	c1, err := n.GenerateHello()
	if err != nil {
		return err
	}
	if _, err := conn.Write([]byte{n.VersionByte()}); err != nil {
		return fmt.Errorf("write c0: %w", err)
	}
	if _, err := conn.Write(c1); err != nil {
		return fmt.Errorf("write c1: %w", err)
	}

	var s0 [1]byte
	if _, err := io.ReadFull(conn, s0[:]); err != nil {
		return fmt.Errorf("read s0: %w", err)
	}
	if err := n.ValidateVersion(s0[0]); err != nil {
		return err
	}
	s1 := make([]byte, HandshakeBlockSize)
	if _, err := io.ReadFull(conn, s1); err != nil {
		return fmt.Errorf("read s1: %w", err)
	}
	s2 := make([]byte, HandshakeBlockSize)
	if _, err := io.ReadFull(conn, s2); err != nil {
		return fmt.Errorf("read s2: %w", err)
	}

	c2, err := n.ValidateAndEcho(s1)
	if err != nil {
		return err
	}
	if _, err := conn.Write(c2); err != nil {
		return fmt.Errorf("write c2: %w", err)
	}
	return n.VerifyEcho(s2)
}
