package message

import (
	"strconv"
	"strings"

	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/internal/normalize"
	"github.com/avlink/mavdialect/xmlsource"
)

// Field is one compiled message field (spec.md §3 Field entity).
type Field struct {
	Name      string // original
	Key       string // normalized
	BaseType  string // textual type with any [N] suffix stripped
	EnumGroup string // normalized group key, "" if none
	ArrayLen  int    // 0 means scalar
	Extension bool
}

// IsArray reports whether the field declared a [N] suffix.
func (f *Field) IsArray() bool { return f.ArrayLen > 0 }

func fieldFromXML(fx xmlsource.FieldXML) (*Field, error) {
	if fx.Name == "" {
		return nil, errors.WithStack(&errs.NullIdentifier{Where: "field name"})
	}
	base, arrLen, err := splitArrayType(fx.Type)
	if err != nil {
		return nil, err
	}
	f := &Field{
		Name:      fx.Name,
		Key:       normalize.Key(fx.Name),
		BaseType:  base,
		ArrayLen:  arrLen,
		Extension: fx.Extension,
	}
	if fx.EnumGroup != "" {
		f.EnumGroup = normalize.Key(fx.EnumGroup)
	}
	return f, nil
}

// splitArrayType splits "float[4]" into ("float", 4) and "uint8_t" into
// ("uint8_t", 0).
func splitArrayType(decl string) (base string, arrayLen int, err error) {
	idx := strings.IndexByte(decl, '[')
	if idx < 0 {
		return decl, 0, nil
	}
	base = decl[:idx]
	rest := decl[idx+1:]
	rest = strings.TrimSuffix(rest, "]")
	n, convErr := strconv.Atoi(rest)
	if convErr != nil {
		return "", 0, errors.WithStack(&errs.NotAnInteger{Identifier: "array length of " + decl, Text: rest})
	}
	return base, n, nil
}
