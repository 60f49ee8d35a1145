// Package message compiles one <message> element into a payload layout, a
// CRC extra-byte seed, and the per-field encode/decode closures that convert
// between a wire payload and a map[string]any record (spec.md §4.4).
package message

import (
	"sort"
	"strconv"

	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/enum"
	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/internal/normalize"
	"github.com/avlink/mavdialect/primitive"
	"github.com/avlink/mavdialect/xmlsource"
)

// Message is one compiled MAVLink message (spec.md §3 Message entity).
type Message struct {
	ID          int
	Name        string
	Key         string
	Description string

	Fields          []*Field // regular, sorted by wire priority
	ExtensionFields []*Field // declaration order, never reordered

	PayloadSize         int // sum over Fields only
	ExtendedPayloadSize int // PayloadSize + sum over ExtensionFields

	CRCExtra byte

	regular   []*codec
	extension []*codec
}

// Compile builds a Message from its parsed XML form. groups is the dialect's
// compiled enum table (enum.Result.Groups); it may be nil if the dialect
// declares no enums.
func Compile(raw xmlsource.MessageXML, groups map[string]*enum.Group) (*Message, error) {
	if raw.Id == "" {
		return nil, errors.WithStack(&errs.BadMessageId{Message: raw.Name, Text: raw.Id})
	}
	id, err := strconv.ParseInt(raw.Id, 0, 64)
	if err != nil {
		return nil, errors.WithStack(&errs.BadMessageId{Message: raw.Name, Text: raw.Id})
	}
	if raw.Name == "" {
		return nil, errors.WithStack(&errs.NullIdentifier{Where: "message name"})
	}

	var regular, extension []*Field
	for _, fx := range raw.Fields {
		f, err := fieldFromXML(fx)
		if err != nil {
			return nil, err
		}
		if f.Extension {
			extension = append(extension, f)
		} else {
			regular = append(regular, f)
		}
	}

	sorted := make([]*Field, len(regular))
	copy(sorted, regular)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, _ := primitive.Lookup(sorted[i].BaseType)
		pj, _ := primitive.Lookup(sorted[j].BaseType)
		return priorityOf(pi) > priorityOf(pj)
	})

	msg := &Message{
		ID:              int(id),
		Name:            raw.Name,
		Key:             normalize.Key(raw.Name),
		Description:     raw.Description,
		Fields:          sorted,
		ExtensionFields: extension,
	}

	for _, f := range sorted {
		prim, err := primitive.MustLookup(f.BaseType, f.Name)
		if err != nil {
			return nil, err
		}
		msg.regular = append(msg.regular, compileCodec(f, prim, groups[f.EnumGroup]))
		msg.PayloadSize += f.byteLen(prim)
	}
	msg.ExtendedPayloadSize = msg.PayloadSize
	for _, f := range extension {
		prim, err := primitive.MustLookup(f.BaseType, f.Name)
		if err != nil {
			return nil, err
		}
		msg.extension = append(msg.extension, compileCodec(f, prim, groups[f.EnumGroup]))
		msg.ExtendedPayloadSize += f.byteLen(prim)
	}

	msg.CRCExtra = crcExtraSeed(msg.Name, sorted)

	return msg, nil
}

func priorityOf(p *primitive.Type) int {
	if p == nil {
		return 0
	}
	return int(p.Priority)
}

// DefaultPayload returns a fresh record with every field — regular and
// extension — set to its base type's zero value (spec.md §4.4.3).
func (m *Message) DefaultPayload() map[string]any {
	out := make(map[string]any, len(m.Fields)+len(m.ExtensionFields))
	for _, c := range m.regular {
		out[c.field.Key] = zeroValueFor(c.field)
	}
	for _, c := range m.extension {
		out[c.field.Key] = zeroValueFor(c.field)
	}
	return out
}

func zeroValueFor(f *Field) any {
	prim, ok := primitive.Lookup(f.BaseType)
	if !ok {
		return nil
	}
	if !f.IsArray() {
		return prim.Zero
	}
	if prim.Key == "char" {
		return ""
	}
	elems := make([]any, f.ArrayLen)
	for i := range elems {
		elems[i] = prim.Zero
	}
	return elems
}

// Encode serializes msg into a fixed-size payload buffer. When extended is
// true the buffer also carries extension fields and is ExtendedPayloadSize
// long; otherwise it is exactly PayloadSize long (spec.md §4.4.3).
func (m *Message) Encode(msg map[string]any, extended bool) ([]byte, error) {
	size := m.PayloadSize
	if extended {
		size = m.ExtendedPayloadSize
	}
	buf := make([]byte, size)
	offset := 0
	for _, c := range m.regular {
		prim, _ := primitive.Lookup(c.field.BaseType)
		n := c.field.byteLen(prim)
		if err := c.encode(buf[offset:offset+n], msg); err != nil {
			return nil, err
		}
		offset += n
	}
	if !extended {
		return buf, nil
	}
	for _, c := range m.extension {
		prim, _ := primitive.Lookup(c.field.BaseType)
		n := c.field.byteLen(prim)
		if err := c.encode(buf[offset:offset+n], msg); err != nil {
			return nil, err
		}
		offset += n
	}
	return buf, nil
}

// Decode parses payload into a record. Extension fields are decoded only
// while bytes remain — a payload trimmed to PayloadSize by the sender (no
// extension fields set) decodes the regular fields and stops there, which
// mirrors real MAVLink's trailing-zero truncation on the wire.
func (m *Message) Decode(payload []byte) (map[string]any, error) {
	out := make(map[string]any, len(m.Fields)+len(m.ExtensionFields))
	offset := 0
	for _, c := range m.regular {
		prim, _ := primitive.Lookup(c.field.BaseType)
		n := c.field.byteLen(prim)
		if offset+n > len(payload) {
			return nil, errors.WithStack(&errs.ArrayOverflow{Field: c.field.Name, Declared: n, Got: len(payload) - offset})
		}
		if err := c.decode(payload[offset:offset+n], out); err != nil {
			return nil, err
		}
		offset += n
	}
	for _, c := range m.extension {
		prim, _ := primitive.Lookup(c.field.BaseType)
		n := c.field.byteLen(prim)
		if offset+n > len(payload) {
			break
		}
		if err := c.decode(payload[offset:offset+n], out); err != nil {
			return nil, err
		}
		offset += n
	}
	return out, nil
}
