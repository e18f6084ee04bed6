// Package rtmp implements the session-establishment handshake and the
// user-control event layer of the wire protocol. Both are pure byte
// transformations; connection lifecycle belongs to the caller.
package rtmp

import (
	"errors"
	"fmt"
)

// RTMPVersion is the protocol version carried in C0/S0.
const RTMPVersion = 0x03

// Handshake block sizes. C0/S0 are a single version byte; C1/S1/C2/S2 are
// fixed 1536-byte blocks: 4-byte time, 4-byte reserved, 1528 bytes of random
// (hello) or echoed (echo) payload.
const (
	HandshakeBlockSize  = 1536
	handshakeRandomOff  = 8
	handshakeRandomSize = HandshakeBlockSize - handshakeRandomOff
)

var (
	// ErrInvalidFormat reports an opcode outside the event table or a
	// payload that disagrees with its opcode.
	ErrInvalidFormat = errors.New("rtmp: invalid format")

	// ErrTruncated reports a payload too short for its opcode. It wraps
	// ErrInvalidFormat; see the amf0 package for the rationale.
	ErrTruncated = fmt.Errorf("%w: truncated input", ErrInvalidFormat)

	// ErrHandshake reports a byte-count or content mismatch during session
	// negotiation.
	ErrHandshake = errors.New("rtmp: handshake failed")
)

// EventType identifies a user-control event by its 16-bit wire opcode.
type EventType uint16

// The closed user-control event table. Only these opcodes are valid; the
// numeric gap before SegmentNotFound is part of the wire protocol.
const (
	EventClearStream          EventType = 0x00
	EventClearBuffer          EventType = 0x01
	EventStreamDry            EventType = 0x02
	EventClientBufferTime     EventType = 0x03
	EventResetStream          EventType = 0x04
	EventRecordedStream       EventType = 0x05
	EventClientPinged         EventType = 0x06
	EventClientPonged         EventType = 0x07
	EventUDPRequest           EventType = 0x08
	EventUDPResponse          EventType = 0x09
	EventBandwidthLimit       EventType = 0x0A
	EventBandwidth            EventType = 0x0B
	EventThrottleBandwidth    EventType = 0x0C
	EventStreamCreated        EventType = 0x0D
	EventStreamDeleted        EventType = 0x0E
	EventSetReadAccess        EventType = 0x0F
	EventSetWriteAccess       EventType = 0x10
	EventStreamMetaRequest    EventType = 0x11
	EventStreamMetaResponse   EventType = 0x12
	EventGetSegmentBoundary   EventType = 0x13
	EventSetSegmentBoundary   EventType = 0x14
	EventOnDisconnect         EventType = 0x15
	EventSetCriticalLink      EventType = 0x16
	EventDisconnect           EventType = 0x17
	EventHashUpdate           EventType = 0x18
	EventHashTimeout          EventType = 0x19
	EventHashRequest          EventType = 0x1A
	EventHashResponse         EventType = 0x1B
	EventCheckBandwidth       EventType = 0x1C
	EventSetAudioSampleAccess EventType = 0x1D
	EventSetVideoSampleAccess EventType = 0x1E
	EventThrottleBegin        EventType = 0x1F
	EventThrottleEnd          EventType = 0x20
	EventDRMNotify            EventType = 0x21
	EventRTMFPSync            EventType = 0x22
	EventQueryIHello          EventType = 0x23
	EventForwardIHello        EventType = 0x24
	EventRedirectIHello       EventType = 0x25
	EventNotifyEOF            EventType = 0x26
	EventProxyContinue        EventType = 0x27
	EventProxyRemoveUpstream  EventType = 0x28
	EventRTMFPSetKeepalive    EventType = 0x29
	EventSegmentNotFound      EventType = 0x2E
)

// eventNames doubles as the validity table: an opcode is in the protocol
// exactly when it has a name here.
var eventNames = map[EventType]string{
	EventClearStream:          "ClearStream",
	EventClearBuffer:          "ClearBuffer",
	EventStreamDry:            "StreamDry",
	EventClientBufferTime:     "ClientBufferTime",
	EventResetStream:          "ResetStream",
	EventRecordedStream:       "RecordedStream",
	EventClientPinged:         "ClientPinged",
	EventClientPonged:         "ClientPonged",
	EventUDPRequest:           "UDPRequest",
	EventUDPResponse:          "UDPResponse",
	EventBandwidthLimit:       "BandwidthLimit",
	EventBandwidth:            "Bandwidth",
	EventThrottleBandwidth:    "ThrottleBandwidth",
	EventStreamCreated:        "StreamCreated",
	EventStreamDeleted:        "StreamDeleted",
	EventSetReadAccess:        "SetReadAccess",
	EventSetWriteAccess:       "SetWriteAccess",
	EventStreamMetaRequest:    "StreamMetaRequest",
	EventStreamMetaResponse:   "StreamMetaResponse",
	EventGetSegmentBoundary:   "GetSegmentBoundary",
	EventSetSegmentBoundary:   "SetSegmentBoundary",
	EventOnDisconnect:         "OnDisconnect",
	EventSetCriticalLink:      "SetCriticalLink",
	EventDisconnect:           "Disconnect",
	EventHashUpdate:           "HashUpdate",
	EventHashTimeout:          "HashTimeout",
	EventHashRequest:          "HashRequest",
	EventHashResponse:         "HashResponse",
	EventCheckBandwidth:       "CheckBandwidth",
	EventSetAudioSampleAccess: "SetAudioSampleAccess",
	EventSetVideoSampleAccess: "SetVideoSampleAccess",
	EventThrottleBegin:        "ThrottleBegin",
	EventThrottleEnd:          "ThrottleEnd",
	EventDRMNotify:            "DRMNotify",
	EventRTMFPSync:            "RTMFPSync",
	EventQueryIHello:          "QueryIHello",
	EventForwardIHello:        "ForwardIHello",
	EventRedirectIHello:       "RedirectIHello",
	EventNotifyEOF:            "NotifyEOF",
	EventProxyContinue:        "ProxyContinue",
	EventProxyRemoveUpstream:  "ProxyRemoveUpstream",
	EventRTMFPSetKeepalive:    "RTMFPSetKeepalive",
	EventSegmentNotFound:      "SegmentNotFound",
}

// LookupEvent maps a wire opcode to its event type. The second return is
// false for opcodes outside the table.
func LookupEvent(opcode uint16) (EventType, bool) {
	t := EventType(opcode)
	_, ok := eventNames[t]
	return t, ok
}

// Valid reports whether t is in the event table.
func (t EventType) Valid() bool {
	_, ok := eventNames[t]
	return ok
}

// Opcode returns the 16-bit wire opcode for t, the inverse of LookupEvent.
func (t EventType) Opcode() uint16 {
	return uint16(t)
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(0x%04x)", uint16(t))
}
