package amf0

import (
	"encoding/binary"
	"fmt"
	"math"
)

// maxNestingDepth caps how deep composite values may nest. Every level of
// nesting costs at least one marker byte, so genuine traffic sits far below
// this; the cap keeps crafted input from exhausting the stack.
const maxNestingDepth = 32

// Decode reads one AMF0 value from the front of b. It returns the value, the
// number of bytes consumed, and an error for unknown markers or buffers
// shorter than a declared length. The returned value owns its memory and does
// not alias b.
func Decode(b []byte) (Value, int, error) {
	d := &decoder{buf: b}
	v, err := d.value(0)
	if err != nil {
		return nil, 0, err
	}
	return v, d.pos, nil
}

// decoder is an explicit cursor over the input buffer. All reads are bounds
// checked against the remaining length; nothing reads past len(buf).
type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.pos
}

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, ErrTruncated
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readUint16() (uint16, error) {
	if d.remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

func (d *decoder) readUint32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) readFloat64() (float64, error) {
	if d.remaining() < 8 {
		return 0, ErrTruncated
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(d.buf[d.pos:]))
	d.pos += 8
	return v, nil
}

// readString reads a string body of the given declared length, copying the
// bytes out of the buffer.
func (d *decoder) readString(length int) (string, error) {
	if d.remaining() < length {
		return "", ErrTruncated
	}
	s := string(d.buf[d.pos : d.pos+length])
	d.pos += length
	return s, nil
}

// readShortString reads a 16-bit length prefix followed by that many bytes.
func (d *decoder) readShortString() (string, error) {
	length, err := d.readUint16()
	if err != nil {
		return "", err
	}
	return d.readString(int(length))
}

// value decodes one marker-prefixed value at the cursor.
func (d *decoder) value(depth int) (Value, error) {
	if depth > maxNestingDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidFormat, maxNestingDepth)
	}

	marker, err := d.readByte()
	if err != nil {
		return nil, err
	}

	switch marker {
	case TypeNumber:
		return d.readFloat64()
	case TypeBoolean:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case TypeString:
		return d.readShortString()
	case TypeObject:
		return d.object(depth)
	case TypeNull:
		return nil, nil
	case TypeECMAArray:
		// The leading count is approximate; the sentinel is authoritative.
		if _, err := d.readUint32(); err != nil {
			return nil, err
		}
		obj, err := d.object(depth)
		if err != nil {
			return nil, err
		}
		return ECMAArray{Object: obj}, nil
	case TypeObjectEnd:
		return nil, fmt.Errorf("%w: object end marker outside object", ErrInvalidFormat)
	case TypeStrictArray:
		return d.strictArray(depth)
	case TypeDate:
		millis, err := d.readFloat64()
		if err != nil {
			return nil, err
		}
		offset, err := d.readUint16()
		if err != nil {
			return nil, err
		}
		return Date{Millis: millis, Offset: int16(offset)}, nil
	case TypeLongString:
		s, err := d.longString()
		if err != nil {
			return nil, err
		}
		return LongString(s), nil
	case TypeXMLDocument:
		s, err := d.longString()
		if err != nil {
			return nil, err
		}
		return XML(s), nil
	case TypeTypedObject:
		name, err := d.readShortString()
		if err != nil {
			return nil, err
		}
		obj, err := d.object(depth)
		if err != nil {
			return nil, err
		}
		return TypedObject{ClassName: name, Object: obj}, nil
	case TypeAVMPlus:
		return nil, fmt.Errorf("%w: avmplus payload", ErrUnsupportedType)
	default:
		return nil, fmt.Errorf("%w: unknown type marker 0x%02x", ErrInvalidFormat, marker)
	}
}

// object decodes members up to and including the empty-key ObjectEnd
// sentinel. The cursor never stops between the empty key and its marker, so a
// returned Object always accounts for its terminator.
func (d *decoder) object(depth int) (*Object, error) {
	obj := NewObject()
	for {
		key, err := d.readShortString()
		if err != nil {
			return nil, err
		}
		if key == "" {
			marker, err := d.readByte()
			if err != nil {
				return nil, err
			}
			if marker != TypeObjectEnd {
				return nil, fmt.Errorf("%w: expected object end marker, got 0x%02x", ErrInvalidFormat, marker)
			}
			return obj, nil
		}
		if _, dup := obj.Get(key); dup {
			return nil, fmt.Errorf("%w: duplicate object key %q", ErrInvalidFormat, key)
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (d *decoder) strictArray(depth int) (StrictArray, error) {
	count, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	// Each element costs at least one marker byte, so a count beyond the
	// remaining length cannot be satisfied.
	if int(count) > d.remaining() {
		return nil, ErrTruncated
	}
	arr := make(StrictArray, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func (d *decoder) longString() (string, error) {
	length, err := d.readUint32()
	if err != nil {
		return "", err
	}
	return d.readString(int(length))
}
