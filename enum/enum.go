// Package enum compiles a dialect's <enums> block into an entry-name→value
// table and a group-name→(value→entry-name) table (spec.md §4.3).
package enum

import (
	"strconv"

	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/internal/normalize"
	"github.com/avlink/mavdialect/xmlsource"
)

// Entry is one compiled enum entry.
type Entry struct {
	Key   string // normalized
	Name  string // original
	Value int
}

// Group is one compiled enum group: value -> normalized entry-name key.
type Group struct {
	Key    string // normalized
	Name   string // original
	Values map[int]string
}

// Option configures Compile.
type Option func(*options)

type options struct {
	legacyGlobalCounter bool
}

// WithLegacyGlobalCounter reproduces the historical defect where the
// implicit-value counter runs globally across every <enum> in a dialect
// instead of resetting at each group (spec.md §4.3/§9). Only use this to
// compile old dialect files that were authored against tooling with that
// bug; new dialects should rely on the default per-enum reset.
func WithLegacyGlobalCounter() Option {
	return func(o *options) { o.legacyGlobalCounter = true }
}

// Result is the compiled output of one dialect's <enums> block.
type Result struct {
	EntryToValue map[string]int
	Groups       map[string]*Group
}

// Compile implements spec.md §4.3. By default it resets its running counter
// at the start of every <enum> group — the behavior spec.md's design notes
// call "correct" — pass WithLegacyGlobalCounter to opt into the historical
// global-counter behavior instead.
func Compile(enums []xmlsource.EnumXML, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	entryToValue := make(map[string]int)
	groups := make(map[string]*Group, len(enums))

	lastValue := 0
	for _, e := range enums {
		if !o.legacyGlobalCounter {
			lastValue = 0
		}
		group := &Group{
			Key:    normalize.Key(e.Name),
			Name:   e.Name,
			Values: make(map[int]string, len(e.Entries)),
		}
		for _, entry := range e.Entries {
			key := normalize.Key(entry.Name)
			value := lastValue + 1
			if entry.HasValue {
				v, err := strconv.ParseInt(entry.Value, 0, 64)
				if err != nil {
					return nil, errors.WithStack(&errs.BadEnumValue{Entry: entry.Name, Text: entry.Value})
				}
				value = int(v)
			}
			lastValue = value
			entryToValue[key] = value
			group.Values[value] = key
		}
		groups[group.Key] = group
	}

	return &Result{EntryToValue: entryToValue, Groups: groups}, nil
}
