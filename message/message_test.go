package message

import (
	"testing"

	"github.com/avlink/mavdialect/enum"
	"github.com/avlink/mavdialect/xmlsource"
)

func field(name, typ string) xmlsource.FieldXML {
	return xmlsource.FieldXML{Name: name, Type: typ}
}

func extField(name, typ string) xmlsource.FieldXML {
	return xmlsource.FieldXML{Name: name, Type: typ, Extension: true}
}

func TestEmptyMessage(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{Id: "4", Name: "PING"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.PayloadSize != 0 {
		t.Errorf("PayloadSize = %d, want 0", m.PayloadSize)
	}
	buf, err := m.Encode(map[string]any{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 0 {
		t.Errorf("len(buf) = %d, want 0", len(buf))
	}
}

func TestSingleU8Field(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:     "0",
		Name:   "HEARTBEAT",
		Fields: []xmlsource.FieldXML{field("type", "uint8_t")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.PayloadSize != 1 {
		t.Fatalf("PayloadSize = %d, want 1", m.PayloadSize)
	}
	buf, err := m.Encode(map[string]any{"type": uint8(7)}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 1 || buf[0] != 7 {
		t.Fatalf("buf = %v, want [7]", buf)
	}
	out, err := m.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if out["type"] != uint8(7) {
		t.Errorf("type = %v, want 7", out["type"])
	}
}

func TestFieldReorderingByWirePriority(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:   "1",
		Name: "MIXED",
		Fields: []xmlsource.FieldXML{
			field("a", "uint8_t"),
			field("b", "uint32_t"),
			field("c", "uint16_t"),
			field("d", "uint8_t"),
		},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, f := range m.Fields {
		order = append(order, f.Name)
	}
	want := []string{"b", "c", "a", "d"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (full: %v)", i, order[i], want[i], order)
		}
	}
}

func TestFloatArrayFieldRoundTrip(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:     "2",
		Name:   "WAYPOINT",
		Fields: []xmlsource.FieldXML{field("wp", "float[4]")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.PayloadSize != 16 {
		t.Fatalf("PayloadSize = %d, want 16", m.PayloadSize)
	}
	in := []any{float32(1), float32(2), float32(3), float32(4)}
	buf, err := m.Encode(map[string]any{"wp": in}, false)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := out["wp"].([]any)
	if !ok || len(got) != 4 {
		t.Fatalf("wp = %#v", out["wp"])
	}
	for i, v := range got {
		if v.(float32) != in[i].(float32) {
			t.Errorf("wp[%d] = %v, want %v", i, v, in[i])
		}
	}
}

func TestArrayOverflowFailsClosed(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:     "3",
		Name:   "SHORT",
		Fields: []xmlsource.FieldXML{field("wp", "float[2]")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.Encode(map[string]any{"wp": []any{float32(1), float32(2), float32(3)}}, false)
	if err == nil {
		t.Fatal("expected ArrayOverflow error")
	}
}

func TestCharArrayTrimsTrailingNUL(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:     "5",
		Name:   "NAMED",
		Fields: []xmlsource.FieldXML{field("label", "char[16]")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := m.Encode(map[string]any{"label": "hi"}, false)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if out["label"] != "hi" {
		t.Errorf("label = %q, want %q", out["label"], "hi")
	}
}

func TestExtensionFieldsExcludedFromCRC(t *testing.T) {
	withoutExt, err := Compile(xmlsource.MessageXML{
		Id:     "6",
		Name:   "EXT",
		Fields: []xmlsource.FieldXML{field("a", "uint8_t")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	withExt, err := Compile(xmlsource.MessageXML{
		Id:     "6",
		Name:   "EXT",
		Fields: []xmlsource.FieldXML{field("a", "uint8_t"), extField("b", "uint16_t")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if withoutExt.CRCExtra != withExt.CRCExtra {
		t.Errorf("CRCExtra differs: %d vs %d, extension fields must not affect it", withoutExt.CRCExtra, withExt.CRCExtra)
	}
	if withExt.PayloadSize != 1 || withExt.ExtendedPayloadSize != 3 {
		t.Errorf("PayloadSize=%d ExtendedPayloadSize=%d, want 1/3", withExt.PayloadSize, withExt.ExtendedPayloadSize)
	}
}

func TestEnumFieldRoundTrip(t *testing.T) {
	enums := []xmlsource.EnumXML{
		{Name: "COLOR", Entries: []xmlsource.EntryXML{
			{Name: "RED", Value: "1", HasValue: true},
			{Name: "BLUE", Value: "2", HasValue: true},
		}},
	}
	res, err := enum.Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Compile(xmlsource.MessageXML{
		Id:     "7",
		Name:   "PAINT",
		Fields: []xmlsource.FieldXML{{Name: "color", Type: "uint8_t", EnumGroup: "COLOR"}},
	}, res.Groups)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := m.Encode(map[string]any{"color": uint8(2)}, false)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if out["color"] != "blue" {
		t.Errorf("color = %v, want blue", out["color"])
	}
}

func TestEnumFieldUnknownValuePassesThrough(t *testing.T) {
	enums := []xmlsource.EnumXML{
		{Name: "COLOR", Entries: []xmlsource.EntryXML{{Name: "RED", Value: "1", HasValue: true}}},
	}
	res, err := enum.Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	m, err := Compile(xmlsource.MessageXML{
		Id:     "8",
		Name:   "PAINT2",
		Fields: []xmlsource.FieldXML{{Name: "color", Type: "uint8_t", EnumGroup: "COLOR"}},
	}, res.Groups)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Decode([]byte{99})
	if err != nil {
		t.Fatal(err)
	}
	if out["color"] != uint8(99) {
		t.Errorf("color = %v, want 99", out["color"])
	}
}

func TestBadMessageId(t *testing.T) {
	if _, err := Compile(xmlsource.MessageXML{Id: "not-a-number", Name: "X"}, nil); err == nil {
		t.Fatal("expected BadMessageId error")
	}
}

func TestDefaultPayloadCoversExtensionFields(t *testing.T) {
	m, err := Compile(xmlsource.MessageXML{
		Id:     "9",
		Name:   "DEFAULTS",
		Fields: []xmlsource.FieldXML{field("a", "uint8_t"), extField("b", "float")},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	def := m.DefaultPayload()
	if def["a"] != uint8(0) {
		t.Errorf("a = %v, want 0", def["a"])
	}
	if def["b"] != float32(0) {
		t.Errorf("b = %v, want 0", def["b"])
	}
}
