// Package primitive is the MAVLink base-type registry: byte size, wire
// priority, zero value, and little-endian read/write for each base type.
// It is the leaf of the compiler pipeline — nothing here depends on an
// enum table, a field, or a message.
package primitive

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/avlink/mavdialect/errs"
)

// Priority ranks base types by byte size for the wire-ordering sort in the
// message compiler: 8-byte types sort first, then 4, then 2, then 1.
type Priority int

const (
	Priority1 Priority = 1
	Priority2 Priority = 2
	Priority4 Priority = 4
	Priority8 Priority = 8
)

// Reader decodes one value of a type's size from the front of buf.
type Reader func(buf []byte) (any, error)

// Writer encodes v into buf, which is exactly Type.Size bytes long.
type Writer func(buf []byte, v any) error

// Type describes one MAVLink base type.
type Type struct {
	Key      string
	Size     int
	Priority Priority
	Zero     any
	Read     Reader
	Write    Writer
}

var registry = map[string]*Type{}

func register(t *Type) {
	registry[t.Key] = t
}

func zero[T constraints.Integer | constraints.Float]() T {
	return T(0)
}

func writeUint1(buf []byte, v any) error {
	b, err := toUint(v, 1)
	if err != nil {
		return err
	}
	buf[0] = byte(b)
	return nil
}

func init() {
	register(&Type{
		Key: "char", Size: 1, Priority: Priority1, Zero: zero[uint8](),
		Read:  func(buf []byte) (any, error) { return buf[0], nil },
		Write: writeUint1,
	})
	register(&Type{
		Key: "uint8_t", Size: 1, Priority: Priority1, Zero: zero[uint8](),
		Read:  func(buf []byte) (any, error) { return buf[0], nil },
		Write: writeUint1,
	})
	register(&Type{
		// Decodes identically to uint8_t; the message compiler substitutes
		// "uint8_t" for this key when deriving the CRC seed string (§4.4 step 5).
		Key: "uint8_t_mavlink_version", Size: 1, Priority: Priority1, Zero: zero[uint8](),
		Read:  func(buf []byte) (any, error) { return buf[0], nil },
		Write: writeUint1,
	})
	register(&Type{
		Key: "int8_t", Size: 1, Priority: Priority1, Zero: zero[int8](),
		Read: func(buf []byte) (any, error) { return int8(buf[0]), nil },
		Write: func(buf []byte, v any) error {
			b, err := toInt(v, 1)
			if err != nil {
				return err
			}
			buf[0] = byte(b)
			return nil
		},
	})
	register(&Type{
		Key: "uint16_t", Size: 2, Priority: Priority2, Zero: zero[uint16](),
		Read: func(buf []byte) (any, error) { return binary.LittleEndian.Uint16(buf), nil },
		Write: func(buf []byte, v any) error {
			b, err := toUint(v, 2)
			if err == nil {
				binary.LittleEndian.PutUint16(buf, uint16(b))
			}
			return err
		},
	})
	register(&Type{
		Key: "int16_t", Size: 2, Priority: Priority2, Zero: zero[int16](),
		Read: func(buf []byte) (any, error) { return int16(binary.LittleEndian.Uint16(buf)), nil },
		Write: func(buf []byte, v any) error {
			b, err := toInt(v, 2)
			if err == nil {
				binary.LittleEndian.PutUint16(buf, uint16(b))
			}
			return err
		},
	})
	register(&Type{
		Key: "uint32_t", Size: 4, Priority: Priority4, Zero: zero[uint32](),
		Read: func(buf []byte) (any, error) { return binary.LittleEndian.Uint32(buf), nil },
		Write: func(buf []byte, v any) error {
			b, err := toUint(v, 4)
			if err == nil {
				binary.LittleEndian.PutUint32(buf, uint32(b))
			}
			return err
		},
	})
	register(&Type{
		Key: "int32_t", Size: 4, Priority: Priority4, Zero: zero[int32](),
		Read: func(buf []byte) (any, error) { return int32(binary.LittleEndian.Uint32(buf)), nil },
		Write: func(buf []byte, v any) error {
			b, err := toInt(v, 4)
			if err == nil {
				binary.LittleEndian.PutUint32(buf, uint32(b))
			}
			return err
		},
	})
	register(&Type{
		Key: "float", Size: 4, Priority: Priority4, Zero: zero[float32](),
		Read: func(buf []byte) (any, error) {
			return math.Float32frombits(binary.LittleEndian.Uint32(buf)), nil
		},
		Write: func(buf []byte, v any) error {
			f, err := toFloat(v)
			if err == nil {
				binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(f)))
			}
			return err
		},
	})
	register(&Type{
		Key: "uint64_t", Size: 8, Priority: Priority8, Zero: zero[uint64](),
		Read: func(buf []byte) (any, error) { return binary.LittleEndian.Uint64(buf), nil },
		Write: func(buf []byte, v any) error {
			b, err := toUint(v, 8)
			if err == nil {
				binary.LittleEndian.PutUint64(buf, b)
			}
			return err
		},
	})
	register(&Type{
		Key: "int64_t", Size: 8, Priority: Priority8, Zero: zero[int64](),
		Read: func(buf []byte) (any, error) { return int64(binary.LittleEndian.Uint64(buf)), nil },
		Write: func(buf []byte, v any) error {
			b, err := toInt(v, 8)
			if err == nil {
				binary.LittleEndian.PutUint64(buf, uint64(b))
			}
			return err
		},
	})
	register(&Type{
		Key: "double", Size: 8, Priority: Priority8, Zero: zero[float64](),
		Read: func(buf []byte) (any, error) {
			return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
		},
		Write: func(buf []byte, v any) error {
			f, err := toFloat(v)
			if err == nil {
				binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
			}
			return err
		},
	})
}

// Lookup returns the registered type for key, or ok=false.
func Lookup(key string) (*Type, bool) {
	t, ok := registry[key]
	return t, ok
}

// MustLookup is Lookup, returning errs.UnknownType for the named field when
// the base type is absent — this is a compile-time failure, never a runtime
// one (spec.md §4.1).
func MustLookup(key, fieldName string) (*Type, error) {
	t, ok := Lookup(key)
	if !ok {
		return nil, &errs.UnknownType{BaseType: key, Field: fieldName}
	}
	return t, nil
}

// SeedTypeName is the type name used when deriving a message's CRC seed
// string: uint8_t_mavlink_version participates as plain uint8_t (spec.md §3).
func SeedTypeName(key string) string {
	if key == "uint8_t_mavlink_version" {
		return "uint8_t"
	}
	return key
}

func toUint(v any, size int) (uint64, error) {
	u, ok := castUint(v)
	if !ok {
		return 0, errBadValue(v, size)
	}
	return u, nil
}

func toInt(v any, size int) (int64, error) {
	i, ok := castInt(v)
	if !ok {
		return 0, errBadValue(v, size)
	}
	return i, nil
}

func toFloat(v any) (float64, error) {
	f, ok := castFloat(v)
	if !ok {
		return 0, errBadValue(v, 0)
	}
	return f, nil
}

func castUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int:
		return uint64(n), true
	case int64:
		return uint64(n), true
	}
	return 0, false
}

func castInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint8:
		return int64(n), true
	}
	return 0, false
}

func castFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func errBadValue(v any, size int) error {
	return fmt.Errorf("primitive: value of unsupported type %T for a %d-byte field", v, size)
}
