// Package amf0 implements the AMF0 self-describing value format used for
// control-plane command payloads, plus the enclosing AMF packet framing.
package amf0

import (
	"errors"
	"fmt"
)

// AMF0 type markers. The table is closed: any other leading byte is a format error.
const (
	TypeNumber      = 0x00
	TypeBoolean     = 0x01
	TypeString      = 0x02
	TypeObject      = 0x03
	TypeMovieClip   = 0x04 // reserved, never valid on the wire
	TypeNull        = 0x05
	TypeUndefined   = 0x06
	TypeReference   = 0x07
	TypeECMAArray   = 0x08
	TypeObjectEnd   = 0x09
	TypeStrictArray = 0x0A
	TypeDate        = 0x0B
	TypeLongString  = 0x0C
	TypeUnsupported = 0x0D
	TypeRecordSet   = 0x0E // reserved, never valid on the wire
	TypeXMLDocument = 0x0F
	TypeTypedObject = 0x10
	TypeAVMPlus     = 0x11 // switch to AMF3 encoding; payload semantics out of scope
)

var (
	// ErrInvalidFormat reports malformed input: an unknown type marker, a
	// declared length that disagrees with the buffer, or a missing sentinel.
	ErrInvalidFormat = errors.New("amf0: invalid format")

	// ErrTruncated reports a buffer too short for a declared field. It wraps
	// ErrInvalidFormat, so errors.Is(err, ErrInvalidFormat) holds for both,
	// while errors.Is(err, ErrTruncated) lets a transport decide to buffer
	// more bytes and retry instead of dropping the connection.
	ErrTruncated = fmt.Errorf("%w: truncated input", ErrInvalidFormat)

	// ErrUnsupportedType reports an encode request for a value the codec
	// cannot represent. It is a result, never a panic.
	ErrUnsupportedType = errors.New("amf0: unsupported type")
)

// Value holds any decoded AMF0 value. The concrete type identifies the
// variant: float64 (Number), bool (Boolean), string (String), *Object,
// nil (Null), ECMAArray, StrictArray, Date, LongString, XML, TypedObject.
// Decoded values never alias the input buffer.
type Value interface{}

// Pair is a single named member of an Object.
type Pair struct {
	Key   string
	Value Value
}

// Object is an ordered set of key/value members. Keys are unique and
// insertion order is preserved, matching the encoded member order.
type Object struct {
	pairs []Pair
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Set appends a member, or replaces the value in place if the key exists.
func (o *Object) Set(key string, v Value) *Object {
	for i := range o.pairs {
		if o.pairs[i].Key == key {
			o.pairs[i].Value = v
			return o
		}
	}
	o.pairs = append(o.pairs, Pair{Key: key, Value: v})
	return o
}

// Get returns the value for key and whether it is present.
func (o *Object) Get(key string) (Value, bool) {
	for i := range o.pairs {
		if o.pairs[i].Key == key {
			return o.pairs[i].Value, true
		}
	}
	return nil, false
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.pairs)
}

// Pairs returns the members in insertion order. The slice is shared; callers
// must not mutate it.
func (o *Object) Pairs() []Pair {
	return o.pairs
}

// ECMAArray is an associative array: an Object preceded on the wire by an
// approximate member count.
type ECMAArray struct {
	*Object
}

// StrictArray is a dense array of values.
type StrictArray []Value

// Date is a point in time: milliseconds since the Unix epoch plus a time-zone
// offset in minutes. The offset is reserved and normally zero.
type Date struct {
	Millis float64
	Offset int16
}

// LongString is a string whose encoded length prefix is 32 bits wide.
type LongString string

// XML is an XML document; encoded like LongString under its own marker.
type XML string

// TypedObject is an Object tagged with a class name.
type TypedObject struct {
	ClassName string
	*Object
}
