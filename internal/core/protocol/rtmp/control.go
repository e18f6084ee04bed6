package rtmp

import (
	"encoding/binary"
	"fmt"
)

// Event is a decoded user-control event. The opcode alone determines the
// variant. The ping family carries a timestamp; every other opcode carries
// its payload bytes opaquely, because this layer cannot verify a shape the
// protocol does not pin down.
type Event struct {
	Type      EventType
	Timestamp uint32 // ClientPinged / ClientPonged only
	Payload   []byte // opaque payload for all other opcodes; never aliases input
}

// DecodeEvent classifies a 16-bit opcode against the event table and
// extracts the typed payload. Opcodes outside the table are a format error.
func DecodeEvent(opcode uint16, payload []byte) (Event, error) {
	t, ok := LookupEvent(opcode)
	if !ok {
		return Event{}, fmt.Errorf("%w: unknown event opcode 0x%04x", ErrInvalidFormat, opcode)
	}

	switch t {
	case EventClientPinged, EventClientPonged:
		if len(payload) < 4 {
			return Event{}, fmt.Errorf("%w: %s payload is %d bytes, need 4", ErrTruncated, t, len(payload))
		}
		if len(payload) > 4 {
			return Event{}, fmt.Errorf("%w: %s payload has %d trailing bytes", ErrInvalidFormat, t, len(payload)-4)
		}
		return Event{Type: t, Timestamp: binary.BigEndian.Uint32(payload)}, nil
	default:
		ev := Event{Type: t}
		if len(payload) > 0 {
			ev.Payload = append([]byte(nil), payload...)
		}
		return ev, nil
	}
}

// EncodeEvent is the inverse of DecodeEvent: it returns the wire opcode and
// payload for ev. The table is the same one the decoder uses, so any decoded
// event re-encodes to the bytes it came from.
func EncodeEvent(ev Event) (uint16, []byte, error) {
	if !ev.Type.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown event type 0x%04x", ErrInvalidFormat, uint16(ev.Type))
	}

	switch ev.Type {
	case EventClientPinged, EventClientPonged:
		payload := make([]byte, 4)
		binary.BigEndian.PutUint32(payload, ev.Timestamp)
		return ev.Type.Opcode(), payload, nil
	default:
		var payload []byte
		if len(ev.Payload) > 0 {
			payload = append([]byte(nil), ev.Payload...)
		}
		return ev.Type.Opcode(), payload, nil
	}
}
