// Package dialect compiles one or more parsed MAVLink XML trees into a
// single merged codec table: an enum table plus a name-keyed table of
// compiled messages (spec.md §4.5/§4.6).
package dialect

import (
	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/enum"
	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/internal/normalize"
	"github.com/avlink/mavdialect/message"
	"github.com/avlink/mavdialect/xmlsource"
)

// Descriptions holds human-readable text pulled from the XML, partitioned
// by namespace so an enum group and a message sharing a normalized name
// never collide (spec.md §9 Open Question: description namespace).
type Descriptions struct {
	EnumGroups  map[string]string
	EnumEntries map[string]string
	Messages    map[string]string
}

func newDescriptions() *Descriptions {
	return &Descriptions{
		EnumGroups:  map[string]string{},
		EnumEntries: map[string]string{},
		Messages:    map[string]string{},
	}
}

// Dialect is one compiled codec table: the output of CompileOne.
type Dialect struct {
	Name         string
	Enums        *enum.Result
	Messages     map[string]*message.Message // keyed by normalized message name
	MessageByID  map[int]*message.Message
	Descriptions *Descriptions // nil unless WithDescriptions was set
}

// MergedDialect is the union of several Dialects — same shape as Dialect,
// produced by Merge instead of CompileOne (spec.md §3).
type MergedDialect = Dialect

// Option configures CompileOne.
type Option func(*options)

type options struct {
	legacyGlobalCounter bool
	descriptions        bool
}

// WithLegacyGlobalCounter threads enum.WithLegacyGlobalCounter through to
// the enum compiler for dialects authored against the historical defect.
func WithLegacyGlobalCounter() Option {
	return func(o *options) { o.legacyGlobalCounter = true }
}

// WithDescriptions collects every <description> in the source tree into
// the compiled Dialect instead of discarding it.
func WithDescriptions() Option {
	return func(o *options) { o.descriptions = true }
}

// CompileOne compiles a single already-loaded source into a Dialect. It
// does not consult any other source — include-closure validation happens
// in xmlsource.Load, and cross-dialect name conflicts are Merge's job.
func CompileOne(src *xmlsource.Source, opts ...Option) (*Dialect, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var enumOpts []enum.Option
	if o.legacyGlobalCounter {
		enumOpts = append(enumOpts, enum.WithLegacyGlobalCounter())
	}
	enumResult, err := enum.Compile(src.Tree.Enums, enumOpts...)
	if err != nil {
		return nil, err
	}

	d := &Dialect{
		Name:        src.Name,
		Enums:       enumResult,
		Messages:    make(map[string]*message.Message, len(src.Tree.Messages)),
		MessageByID: make(map[int]*message.Message, len(src.Tree.Messages)),
	}

	for _, raw := range src.Tree.Messages {
		msg, err := message.Compile(raw, enumResult.Groups)
		if err != nil {
			return nil, err
		}
		if existing, ok := d.MessageByID[msg.ID]; ok {
			return nil, errors.WithStack(&errs.MergeConflict{
				Kind:   errs.ConflictMessageId,
				Items:  []string{existing.Name, msg.Name},
				Source: src.Name,
			})
		}
		d.Messages[msg.Key] = msg
		d.MessageByID[msg.ID] = msg
	}

	if o.descriptions {
		d.Descriptions = collectDescriptions(src.Tree)
	}

	return d, nil
}

func collectDescriptions(tree *xmlsource.MavlinkXML) *Descriptions {
	out := newDescriptions()
	for _, e := range tree.Enums {
		if e.Description != "" {
			out.EnumGroups[normalize.Key(e.Name)] = e.Description
		}
		for _, entry := range e.Entries {
			if entry.Description != "" {
				out.EnumEntries[normalize.Key(entry.Name)] = entry.Description
			}
		}
	}
	for _, m := range tree.Messages {
		if m.Description != "" {
			out.Messages[normalize.Key(m.Name)] = m.Description
		}
	}
	return out
}
