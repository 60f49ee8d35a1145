// Package errs defines the compiler's error taxonomy. Every type here is
// fatal to the overall compile — there is no partial result on error.
package errs

import "fmt"

// NullIdentifier is raised when a name key was required but absent.
type NullIdentifier struct {
	Where string
}

func (e *NullIdentifier) Error() string {
	return fmt.Sprintf("%s: missing required identifier", e.Where)
}

// NotAnInteger is raised when a string attribute could not be parsed as a
// signed integer.
type NotAnInteger struct {
	Identifier string
	Text       string
}

func (e *NotAnInteger) Error() string {
	return fmt.Sprintf("%s: %q is not an integer", e.Identifier, e.Text)
}

// MissingFileIdentity is raised when a source has neither a `file=` attribute
// nor a caller-supplied name.
type MissingFileIdentity struct{}

func (e *MissingFileIdentity) Error() string {
	return "source has no file identity: neither file= attribute nor a caller-supplied name"
}

// MissingInclude is raised when an <include> references a file not present
// among the loaded sources.
type MissingInclude struct {
	File string
	From string
}

func (e *MissingInclude) Error() string {
	return fmt.Sprintf("%s: include %q not found among loaded sources", e.From, e.File)
}

// UnknownType is raised when a field declares a base type absent from the
// primitive registry.
type UnknownType struct {
	BaseType string
	Field    string
}

func (e *UnknownType) Error() string {
	return fmt.Sprintf("field %q: unknown base type %q", e.Field, e.BaseType)
}

// BadMessageId is raised when a <message id="..."> is missing or non-integer.
type BadMessageId struct {
	Message string
	Text    string
}

func (e *BadMessageId) Error() string {
	return fmt.Sprintf("message %q: bad id %q", e.Message, e.Text)
}

// BadEnumValue is raised when an entry's value= attribute is non-integer.
type BadEnumValue struct {
	Entry string
	Text  string
}

func (e *BadEnumValue) Error() string {
	return fmt.Sprintf("enum entry %q: bad value %q", e.Entry, e.Text)
}

// ArrayOverflow is raised at encode time when a caller supplies more values
// than an array field's declared length. Message.Decode also returns it when
// the payload is too short for a regular field; there Declared is the
// field's byte length and Got the number of bytes left.
type ArrayOverflow struct {
	Field    string
	Declared int
	Got      int
}

func (e *ArrayOverflow) Error() string {
	return fmt.Sprintf("field %q: array overflow, declared length %d, got %d values", e.Field, e.Declared, e.Got)
}

// ConflictKind enumerates what a merge conflicted on.
type ConflictKind string

const (
	ConflictEnum        ConflictKind = "enum"
	ConflictMessageId   ConflictKind = "message-id"
	ConflictMessageName ConflictKind = "message-name"
)

// MergeConflict is raised when two dialects being merged collide on enum
// names, message ids, or message names. Compiling a single dialect that
// declares one message id twice also raises it, with Kind message-id and
// the two message names as Items.
type MergeConflict struct {
	Kind   ConflictKind
	Items  []string
	Source string
}

func (e *MergeConflict) Error() string {
	return fmt.Sprintf("merge conflict in %q: %s collides on %v", e.Source, e.Kind, e.Items)
}
