package primitive

import "testing"

func TestLookupKnownTypes(t *testing.T) {
	cases := []struct {
		key  string
		size int
		pri  Priority
	}{
		{"uint8_t", 1, Priority1},
		{"int8_t", 1, Priority1},
		{"uint16_t", 2, Priority2},
		{"int16_t", 2, Priority2},
		{"uint32_t", 4, Priority4},
		{"int32_t", 4, Priority4},
		{"float", 4, Priority4},
		{"uint64_t", 8, Priority8},
		{"int64_t", 8, Priority8},
		{"double", 8, Priority8},
		{"char", 1, Priority1},
		{"uint8_t_mavlink_version", 1, Priority1},
	}
	for _, c := range cases {
		typ, ok := Lookup(c.key)
		if !ok {
			t.Fatalf("%s: not found", c.key)
		}
		if typ.Size != c.size {
			t.Errorf("%s: size = %d, want %d", c.key, typ.Size, c.size)
		}
		if typ.Priority != c.pri {
			t.Errorf("%s: priority = %d, want %d", c.key, typ.Priority, c.pri)
		}
	}
}

func TestLookupUnknownType(t *testing.T) {
	if _, ok := Lookup("not_a_type"); ok {
		t.Error("expected not found")
	}
	if _, err := MustLookup("not_a_type", "foo"); err == nil {
		t.Error("expected UnknownType error")
	}
}

func TestSeedTypeName(t *testing.T) {
	if got := SeedTypeName("uint8_t_mavlink_version"); got != "uint8_t" {
		t.Errorf("SeedTypeName = %q, want uint8_t", got)
	}
	if got := SeedTypeName("uint32_t"); got != "uint32_t" {
		t.Errorf("SeedTypeName = %q, want uint32_t", got)
	}
}

func TestRoundTripUint32(t *testing.T) {
	typ, _ := Lookup("uint32_t")
	buf := make([]byte, 4)
	if err := typ.Write(buf, uint32(0xdeadbeef)); err != nil {
		t.Fatal(err)
	}
	v, err := typ.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if v.(uint32) != 0xdeadbeef {
		t.Errorf("got %x, want deadbeef", v)
	}
}

func TestRoundTripFloat(t *testing.T) {
	typ, _ := Lookup("float")
	buf := make([]byte, 4)
	if err := typ.Write(buf, float32(3.5)); err != nil {
		t.Fatal(err)
	}
	v, err := typ.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if v.(float32) != 3.5 {
		t.Errorf("got %v, want 3.5", v)
	}
}
