package enum

import (
	"testing"

	"github.com/avlink/mavdialect/xmlsource"
)

func group(name string, entries ...xmlsource.EntryXML) xmlsource.EnumXML {
	return xmlsource.EnumXML{Name: name, Entries: entries}
}

func entry(name, value string, hasValue bool) xmlsource.EntryXML {
	return xmlsource.EntryXML{Name: name, Value: value, HasValue: hasValue}
}

func TestPerEnumResetByDefault(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("FIRST", entry("A", "", false), entry("B", "", false)),
		group("SECOND", entry("C", "", false), entry("D", "", false)),
	}
	res, err := Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"a": 1, "b": 2, "c": 1, "d": 2}
	for k, v := range want {
		if res.EntryToValue[k] != v {
			t.Errorf("%s = %d, want %d", k, res.EntryToValue[k], v)
		}
	}
}

func TestLegacyGlobalCounterReproducesDefect(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("FIRST", entry("A", "", false), entry("B", "", false)),
		group("SECOND", entry("C", "", false), entry("D", "", false)),
	}
	res, err := Compile(enums, WithLegacyGlobalCounter())
	if err != nil {
		t.Fatal(err)
	}
	// lastValue carries over from FIRST's last entry (2), so SECOND starts at 3.
	want := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}
	for k, v := range want {
		if res.EntryToValue[k] != v {
			t.Errorf("%s = %d, want %d", k, res.EntryToValue[k], v)
		}
	}
}

func TestExplicitValueResetsCounter(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("G", entry("A", "10", true), entry("B", "", false), entry("C", "1", true), entry("D", "", false)),
	}
	res, err := Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"a": 10, "b": 11, "c": 1, "d": 2}
	for k, v := range want {
		if res.EntryToValue[k] != v {
			t.Errorf("%s = %d, want %d", k, res.EntryToValue[k], v)
		}
	}
}

func TestGroupValueLookup(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("MODES", entry("FOO", "1", true), entry("BAR", "2", true)),
	}
	res, err := Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := res.Groups["modes"]
	if !ok {
		t.Fatal("group modes not found")
	}
	if g.Values[2] != "bar" {
		t.Errorf("Values[2] = %q, want bar", g.Values[2])
	}
}

func TestBadEnumValue(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("G", entry("A", "not-an-int", true)),
	}
	if _, err := Compile(enums); err == nil {
		t.Fatal("expected BadEnumValue error")
	}
}

func TestHexEnumValue(t *testing.T) {
	enums := []xmlsource.EnumXML{
		group("G", entry("A", "0x10", true)),
	}
	res, err := Compile(enums)
	if err != nil {
		t.Fatal(err)
	}
	if res.EntryToValue["a"] != 16 {
		t.Errorf("a = %d, want 16", res.EntryToValue["a"])
	}
}
