// Package frame implements the datagram framing used for raw media
// delivery. It shares the protocol boundary with the AMF and control codecs
// but is a flat, non-recursive layout: a little-endian header followed by
// the frame payload.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// headerSize is channel (4) + resolution (1) + size (4).
const headerSize = 9

var (
	// ErrInvalidFormat reports a datagram whose declared size disagrees
	// with the bytes present.
	ErrInvalidFormat = errors.New("frame: invalid format")

	// ErrTruncated reports a datagram shorter than its header or declared
	// payload. It wraps ErrInvalidFormat.
	ErrTruncated = fmt.Errorf("%w: truncated input", ErrInvalidFormat)
)

// Frame is one decoded media datagram. Data is copied out of the source
// buffer, so a Frame outlives the datagram it came from.
type Frame struct {
	Channel    uint32
	Resolution uint8
	Size       uint32
	Data       []byte
}

// Decode parses one datagram: a 32-bit little-endian channel, an 8-bit
// resolution, a 32-bit little-endian size, and size bytes of payload. The
// declared size must account for every remaining byte.
func Decode(datagram []byte) (Frame, error) {
	if len(datagram) < headerSize {
		return Frame{}, fmt.Errorf("%w: datagram is %d bytes, header needs %d", ErrTruncated, len(datagram), headerSize)
	}

	f := Frame{
		Channel:    binary.LittleEndian.Uint32(datagram[0:4]),
		Resolution: datagram[4],
		Size:       binary.LittleEndian.Uint32(datagram[5:9]),
	}

	payload := datagram[headerSize:]
	if int(f.Size) > len(payload) {
		return Frame{}, fmt.Errorf("%w: declared %d payload bytes, datagram carries %d", ErrTruncated, f.Size, len(payload))
	}
	if int(f.Size) < len(payload) {
		return Frame{}, fmt.Errorf("%w: %d bytes past declared payload", ErrInvalidFormat, len(payload)-int(f.Size))
	}
	if len(payload) > 0 {
		f.Data = append([]byte(nil), payload...)
	}
	return f, nil
}

// Encode is the inverse of Decode. The size field is derived from the data;
// the Size member of f is ignored.
func Encode(f Frame) []byte {
	buf := make([]byte, headerSize+len(f.Data))
	binary.LittleEndian.PutUint32(buf[0:4], f.Channel)
	buf[4] = f.Resolution
	binary.LittleEndian.PutUint32(buf[5:9], uint32(len(f.Data)))
	copy(buf[headerSize:], f.Data)
	return buf
}
