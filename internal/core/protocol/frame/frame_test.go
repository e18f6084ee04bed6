package frame

import (
	"errors"
	"testing"
)

func TestDecodeLayout(t *testing.T) {
	datagram := []byte{
		0x39, 0x05, 0x00, 0x00, // channel 1337, little-endian
		0x02,                   // resolution
		0x03, 0x00, 0x00, 0x00, // size 3
		0xDE, 0xAD, 0xBE,
	}
	f, err := Decode(datagram)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.Channel != 1337 {
		t.Errorf("Channel = %d, want 1337", f.Channel)
	}
	if f.Resolution != 2 {
		t.Errorf("Resolution = %d, want 2", f.Resolution)
	}
	if f.Size != 3 || len(f.Data) != 3 {
		t.Errorf("Size = %d, len(Data) = %d, want 3", f.Size, len(f.Data))
	}
}

func TestDecodeShortDatagram(t *testing.T) {
	_, err := Decode([]byte{0x01, 0x02})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	over := Encode(Frame{Channel: 1, Data: []byte{0xAA}})
	if _, err := Decode(append(over, 0xBB)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("surplus err = %v, want ErrInvalidFormat", err)
	}
	if _, err := Decode(over[:len(over)-1]); !errors.Is(err, ErrTruncated) {
		t.Errorf("shortfall err = %v, want ErrTruncated", err)
	}
}

func TestRoundTrip(t *testing.T) {
	want := Frame{Channel: 42, Resolution: 7, Data: []byte{1, 2, 3, 4, 5}}
	got, err := Decode(Encode(want))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Channel != want.Channel || got.Resolution != want.Resolution {
		t.Errorf("header = (%d, %d), want (%d, %d)", got.Channel, got.Resolution, want.Channel, want.Resolution)
	}
	if string(got.Data) != string(want.Data) {
		t.Errorf("Data = % x, want % x", got.Data, want.Data)
	}
}

func TestDecodeCopiesPayload(t *testing.T) {
	datagram := Encode(Frame{Data: []byte{0x11, 0x22}})
	f, err := Decode(datagram)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	datagram[headerSize] = 0xFF
	if f.Data[0] != 0x11 {
		t.Error("frame data aliases the datagram buffer")
	}
}
