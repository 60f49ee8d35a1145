package message

import (
	"bytes"
	"fmt"

	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/enum"
	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/primitive"
)

// EncodeFunc writes msg[field.Key] into dst, which is exactly the field's
// byte span within the payload. A field absent from msg encodes as zero.
type EncodeFunc func(dst []byte, msg map[string]any) error

// DecodeFunc reads src, which is exactly the field's byte span within the
// payload, and sets out[field.Key].
type DecodeFunc func(src []byte, out map[string]any) error

// codec pairs a compiled field with its encode/decode closures.
type codec struct {
	field  *Field
	encode EncodeFunc
	decode DecodeFunc
}

func (f *Field) byteLen(prim *primitive.Type) int {
	n := f.ArrayLen
	if n == 0 {
		n = 1
	}
	return prim.Size * n
}

// compileCodec builds the encode/decode closure pair for one field
// (spec.md §4.4.1). group is nil when the field carries no enum= attribute.
func compileCodec(f *Field, prim *primitive.Type, group *enum.Group) *codec {
	if f.IsArray() {
		return &codec{field: f, encode: arrayEncoder(f, prim), decode: arrayDecoder(f, prim, group)}
	}
	return &codec{field: f, encode: scalarEncoder(f, prim), decode: scalarDecoder(f, prim, group)}
}

func scalarEncoder(f *Field, prim *primitive.Type) EncodeFunc {
	return func(dst []byte, msg map[string]any) error {
		v, ok := msg[f.Key]
		if !ok {
			v = prim.Zero
		}
		return prim.Write(dst, v)
	}
}

func scalarDecoder(f *Field, prim *primitive.Type, group *enum.Group) DecodeFunc {
	return func(src []byte, out map[string]any) error {
		v, err := prim.Read(src)
		if err != nil {
			return err
		}
		out[f.Key] = substituteEnum(v, group)
		return nil
	}
}

func arrayEncoder(f *Field, prim *primitive.Type) EncodeFunc {
	if prim.Key == "char" {
		return func(dst []byte, msg map[string]any) error {
			v, ok := msg[f.Key]
			if !ok {
				return nil
			}
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("message: field %s wants a string, got %T", f.Name, v)
			}
			b := []byte(s)
			if len(b) > f.ArrayLen {
				return errors.WithStack(&errs.ArrayOverflow{Field: f.Name, Declared: f.ArrayLen, Got: len(b)})
			}
			copy(dst, b)
			return nil
		}
	}
	return func(dst []byte, msg map[string]any) error {
		v, ok := msg[f.Key]
		if !ok {
			return nil
		}
		elems, err := toAnySlice(v)
		if err != nil {
			return err
		}
		if len(elems) > f.ArrayLen {
			return errors.WithStack(&errs.ArrayOverflow{Field: f.Name, Declared: f.ArrayLen, Got: len(elems)})
		}
		for i, elem := range elems {
			if err := prim.Write(dst[i*prim.Size:(i+1)*prim.Size], elem); err != nil {
				return err
			}
		}
		return nil
	}
}

func arrayDecoder(f *Field, prim *primitive.Type, group *enum.Group) DecodeFunc {
	if prim.Key == "char" {
		return func(src []byte, out map[string]any) error {
			out[f.Key] = trimTrailingNUL(src)
			return nil
		}
	}
	return func(src []byte, out map[string]any) error {
		elems := make([]any, f.ArrayLen)
		for i := 0; i < f.ArrayLen; i++ {
			v, err := prim.Read(src[i*prim.Size : (i+1)*prim.Size])
			if err != nil {
				return err
			}
			elems[i] = substituteEnum(v, group)
		}
		out[f.Key] = elems
		return nil
	}
}

// substituteEnum replaces v with its enum entry name when group is non-nil
// and v's integer value is a known member; unknown values and non-enum
// fields pass through unchanged (spec.md §4.4.1 Decode).
func substituteEnum(v any, group *enum.Group) any {
	if group == nil {
		return v
	}
	key, ok := toIntKey(v)
	if !ok {
		return v
	}
	if name, found := group.Values[key]; found {
		return name
	}
	return v
}

func toIntKey(v any) (int, bool) {
	switch n := v.(type) {
	case uint8:
		return int(n), true
	case int8:
		return int(n), true
	case uint16:
		return int(n), true
	case int16:
		return int(n), true
	case uint32:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func toAnySlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, nil
	default:
		return nil, fmt.Errorf("message: field value of type %T is not an array", v)
	}
}

// trimTrailingNUL implements char[N] decode: trailing zero bytes are not
// part of the string (spec.md §4.4.1 Decode).
func trimTrailingNUL(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
