package amf0

import (
	"encoding/binary"
	"fmt"
)

// AMF packet format flags. The flag only selects the framing version; AMF3
// payload semantics are out of scope, so both flags use AMF0 grammar here.
const (
	FormatAMF0 = 0x00
	FormatAMF3 = 0x03
)

// Packet is a framed sequence of control-plane messages: a format flag, a
// 16-bit version, a header list and a message list.
type Packet struct {
	Format   byte
	Version  uint16
	Headers  []Header
	Messages []Message
}

// Header is a named packet header. Decoding header payloads is a deferred
// extension point; the codec only rejects counts it cannot honor.
type Header struct {
	Name           string
	MustUnderstand bool
	Value          Value
}

// Message is one routed command: two UTF-8 URIs and a body of ordered
// key/value members.
type Message struct {
	TargetURI   string
	ResponseURI string
	Body        *Object
}

// DecodePacket parses a complete AMF packet. Declared header and message
// counts must match the elements actually present; any shortfall or surplus
// is a format error rather than a best-effort result.
func DecodePacket(b []byte) (*Packet, error) {
	d := &decoder{buf: b}

	format, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if format != FormatAMF0 && format != FormatAMF3 {
		return nil, fmt.Errorf("%w: unknown packet format 0x%02x", ErrInvalidFormat, format)
	}

	version, err := d.readUint16()
	if err != nil {
		return nil, err
	}

	headerCount, err := d.readUint16()
	if err != nil {
		return nil, err
	}
	if headerCount != 0 {
		if d.remaining() == 0 {
			return nil, fmt.Errorf("%w: %d headers declared with no header bytes", ErrInvalidFormat, headerCount)
		}
		return nil, fmt.Errorf("%w: header decoding", ErrUnsupportedType)
	}

	messageCount, err := d.readUint16()
	if err != nil {
		return nil, err
	}

	pkt := &Packet{Format: format, Version: version}
	for i := uint16(0); i < messageCount; i++ {
		msg, err := d.message()
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		pkt.Messages = append(pkt.Messages, msg)
	}

	if d.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d messages", ErrInvalidFormat, d.remaining(), messageCount)
	}
	return pkt, nil
}

// message reads one message at the cursor: target URI, response URI, then a
// body of key/value pairs terminated by the ObjectEnd sentinel. The loop is
// bounded by the remaining buffer length; running out of bytes before the
// sentinel is a truncation error, not a partial body.
func (d *decoder) message() (Message, error) {
	target, err := d.readShortString()
	if err != nil {
		return Message{}, err
	}
	response, err := d.readShortString()
	if err != nil {
		return Message{}, err
	}
	body, err := d.object(0)
	if err != nil {
		return Message{}, err
	}
	return Message{TargetURI: target, ResponseURI: response, Body: body}, nil
}

// EncodePacket is the inverse of DecodePacket. Header encoding is not
// implemented; a packet carrying headers yields ErrUnsupportedType.
func EncodePacket(pkt *Packet) ([]byte, error) {
	if pkt.Format != FormatAMF0 && pkt.Format != FormatAMF3 {
		return nil, fmt.Errorf("%w: unknown packet format 0x%02x", ErrInvalidFormat, pkt.Format)
	}
	if len(pkt.Headers) != 0 {
		return nil, fmt.Errorf("%w: header encoding", ErrUnsupportedType)
	}

	buf := []byte{pkt.Format}
	buf = binary.BigEndian.AppendUint16(buf, pkt.Version)
	buf = binary.BigEndian.AppendUint16(buf, 0)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(pkt.Messages)))

	var err error
	for _, msg := range pkt.Messages {
		if buf, err = appendShortStringBody(buf, msg.TargetURI); err != nil {
			return nil, err
		}
		if buf, err = appendShortStringBody(buf, msg.ResponseURI); err != nil {
			return nil, err
		}
		body := msg.Body
		if body == nil {
			body = NewObject()
		}
		if buf, err = appendMembers(buf, body); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
