package ingest

import (
	"sync/atomic"

	"streamwire/internal/core/protocol/frame"
)

// Stats counts listener activity. All fields are atomics, so the receive
// loop and any number of monitor readers touch them without locking.
type Stats struct {
	frames      atomic.Uint64
	bytes       atomic.Uint64
	malformed   atomic.Uint64
	lastChannel atomic.Uint32
}

// Snapshot is a point-in-time copy of the counters, shaped for JSON.
type Snapshot struct {
	Frames      uint64 `json:"frames"`
	Bytes       uint64 `json:"bytes"`
	Malformed   uint64 `json:"malformed"`
	LastChannel uint32 `json:"last_channel"`
}

// Snapshot reads the counters. Values are individually consistent; the
// snapshot as a whole is not a transaction, which is fine for monitoring.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Frames:      s.frames.Load(),
		Bytes:       s.bytes.Load(),
		Malformed:   s.malformed.Load(),
		LastChannel: s.lastChannel.Load(),
	}
}

func (s *Stats) recordFrame(f frame.Frame) {
	s.frames.Add(1)
	s.bytes.Add(uint64(len(f.Data)))
	s.lastChannel.Store(f.Channel)
}

func (s *Stats) recordMalformed() {
	s.malformed.Add(1)
}
