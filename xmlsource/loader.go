package xmlsource

import (
	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/errs"
)

// Source is a named unit of input: an effective file name paired with its
// already-parsed XML tree (spec.md §3 XmlSource entity).
type Source struct {
	Name string
	Tree *MavlinkXML
}

// NewSource resolves the effective file name from the tree's file= attribute
// if present, otherwise from name. Fails with errs.MissingFileIdentity if
// neither is available (spec.md §4.2).
func NewSource(name string, tree *MavlinkXML) (*Source, error) {
	effective := tree.File
	if effective == "" {
		effective = name
	}
	if effective == "" {
		return nil, errors.WithStack(&errs.MissingFileIdentity{})
	}
	return &Source{Name: effective, Tree: tree}, nil
}

// Load validates that every source's <include> closure is complete: every
// filename any source includes must be the effective name of some loaded
// source. No transitive expansion happens here — dialects are compiled
// independently and merged downstream (spec.md §4.2).
func Load(sources []*Source) ([]*Source, error) {
	known := make(map[string]bool, len(sources))
	for _, s := range sources {
		known[s.Name] = true
	}
	for _, s := range sources {
		for _, inc := range s.Tree.Include {
			if !known[inc] {
				return nil, errors.WithStack(&errs.MissingInclude{File: inc, From: s.Name})
			}
		}
	}
	return sources, nil
}
