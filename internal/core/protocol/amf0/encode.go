package amf0

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes one AMF0 value: the 1-byte type marker followed by the
// type-specific payload. Values outside the representable variant set yield
// ErrUnsupportedType rather than a panic.
func Encode(v Value) ([]byte, error) {
	return appendValue(nil, v)
}

func appendValue(buf []byte, v Value) ([]byte, error) {
	switch val := v.(type) {
	case float64:
		return appendNumber(buf, val), nil
	case bool:
		buf = append(buf, TypeBoolean)
		if val {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case string:
		return appendString(buf, val)
	case nil:
		return append(buf, TypeNull), nil
	case *Object:
		if val == nil {
			return nil, fmt.Errorf("%w: nil object", ErrUnsupportedType)
		}
		buf = append(buf, TypeObject)
		return appendMembers(buf, val)
	case ECMAArray:
		if val.Object == nil {
			return nil, fmt.Errorf("%w: nil ecma array", ErrUnsupportedType)
		}
		buf = append(buf, TypeECMAArray)
		buf = binary.BigEndian.AppendUint32(buf, uint32(val.Len()))
		return appendMembers(buf, val.Object)
	case StrictArray:
		buf = append(buf, TypeStrictArray)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(val)))
		var err error
		for _, elem := range val {
			if buf, err = appendValue(buf, elem); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case Date:
		buf = append(buf, TypeDate)
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(val.Millis))
		return binary.BigEndian.AppendUint16(buf, uint16(val.Offset)), nil
	case LongString:
		buf = append(buf, TypeLongString)
		return appendLongStringBody(buf, string(val)), nil
	case XML:
		buf = append(buf, TypeXMLDocument)
		return appendLongStringBody(buf, string(val)), nil
	case TypedObject:
		if val.Object == nil {
			return nil, fmt.Errorf("%w: nil typed object", ErrUnsupportedType)
		}
		buf = append(buf, TypeTypedObject)
		var err error
		if buf, err = appendShortStringBody(buf, val.ClassName); err != nil {
			return nil, err
		}
		return appendMembers(buf, val.Object)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func appendNumber(buf []byte, n float64) []byte {
	buf = append(buf, TypeNumber)
	return binary.BigEndian.AppendUint64(buf, math.Float64bits(n))
}

// appendString emits the short String form when the byte count fits the
// 16-bit length prefix, and the LongString form otherwise.
func appendString(buf []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint16 {
		buf = append(buf, TypeLongString)
		return appendLongStringBody(buf, s), nil
	}
	buf = append(buf, TypeString)
	return appendShortStringBody(buf, s)
}

// appendShortStringBody writes a 16-bit length prefix and the exact bytes of
// s. The prefix always equals len(s); a string too long for the prefix is not
// representable in this form.
func appendShortStringBody(buf []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: string of %d bytes exceeds 16-bit length prefix", ErrUnsupportedType, len(s))
	}
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...), nil
}

func appendLongStringBody(buf []byte, s string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// appendMembers writes the key/value members of obj in insertion order,
// terminated by the empty-key ObjectEnd sentinel.
func appendMembers(buf []byte, obj *Object) ([]byte, error) {
	var err error
	for _, p := range obj.Pairs() {
		if buf, err = appendShortStringBody(buf, p.Key); err != nil {
			return nil, err
		}
		if buf, err = appendValue(buf, p.Value); err != nil {
			return nil, err
		}
	}
	buf = binary.BigEndian.AppendUint16(buf, 0)
	return append(buf, TypeObjectEnd), nil
}
