package amf0

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeNumberLayout(t *testing.T) {
	buf, err := Encode(float64(1.0))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{TypeNumber, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0}
	if string(buf) != string(want) {
		t.Errorf("Encode(1.0) = % x, want % x", buf, want)
	}
}

func TestEncodeStringLayout(t *testing.T) {
	buf, err := Encode("ab")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{TypeString, 0x00, 0x02, 'a', 'b'}
	if string(buf) != string(want) {
		t.Errorf("Encode(\"ab\") = % x, want % x", buf, want)
	}
}

// A string too long for the 16-bit prefix is promoted to the LongString form
// instead of emitting a lying length.
func TestEncodeOversizeStringPromoted(t *testing.T) {
	s := strings.Repeat("x", 70000)
	buf, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf[0] != TypeLongString {
		t.Fatalf("marker = 0x%02x, want LongString", buf[0])
	}
	v, _, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(v.(LongString)) != s {
		t.Error("oversize string did not round-trip")
	}
}

// An oversize object key has no long form, so encoding must fail cleanly.
func TestEncodeOversizeKeyRejected(t *testing.T) {
	obj := NewObject().Set(strings.Repeat("k", 70000), nil)
	_, err := Encode(obj)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestEncodeUnrepresentableValue(t *testing.T) {
	_, err := Encode(struct{ X int }{1})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestEncodeObjectMemberOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", float64(2))
	obj.Set("a", float64(1))

	buf, err := Encode(obj)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// First key out must be "b": insertion order, not lexical order.
	if buf[1] != 0x00 || buf[2] != 0x01 || buf[3] != 'b' {
		t.Errorf("first member is not \"b\": % x", buf[:4])
	}
	v, _, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	pairs := v.(*Object).Pairs()
	if pairs[0].Key != "b" || pairs[1].Key != "a" {
		t.Errorf("decoded order = %q,%q, want b,a", pairs[0].Key, pairs[1].Key)
	}
}
