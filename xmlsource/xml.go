// Package xmlsource models the MAVLink dialect XML grammar (spec.md §6) and
// the XML Source Loader (spec.md §4.2). Parsing raw bytes into a MavlinkXML
// tree is a boundary concern (ParseXML below is explicitly a convenience for
// callers, not part of the core pipeline); Load itself only ever walks
// already-parsed trees, exactly matching the `{file-name?, xml-tree}` input
// contract spec.md §4.2 describes.
package xmlsource

import (
	"encoding/xml"
	"io"
)

// MavlinkXML is the root <mavlink> element.
type MavlinkXML struct {
	XMLName  xml.Name    `xml:"mavlink"`
	File     string      `xml:"file,attr"`
	Include  []string    `xml:"include"`
	Dialect  string      `xml:"dialect"`
	Enums    []EnumXML   `xml:"enums>enum"`
	Messages []MessageXML `xml:"messages>message"`
}

// EnumXML is one <enum> group.
type EnumXML struct {
	Name        string     `xml:"name,attr"`
	Description string     `xml:"description"`
	Entries     []EntryXML `xml:"entry"`
}

// EntryXML is one <entry> inside an <enum>. Value is kept as text: spec.md
// §4.3 requires integer parsing (with MAVLink's usual decimal/hex notation)
// to happen in the enum compiler, where a bad value becomes errs.BadEnumValue.
type EntryXML struct {
	Name        string `xml:"name,attr"`
	Value       string `xml:"value,attr"`
	HasValue    bool   `xml:"-"`
	Description string `xml:"description"`
}

// UnmarshalXML lets EntryXML record whether value= was present at all,
// distinct from "present but empty" — spec.md §4.3 only auto-increments when
// the attribute is absent.
func (e *EntryXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			e.Name = a.Value
		case "value":
			e.Value = a.Value
			e.HasValue = true
		}
	}
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "description" {
				var desc string
				if err := d.DecodeElement(&desc, &t); err != nil {
					return err
				}
				e.Description = desc
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "entry" {
				return nil
			}
		}
	}
	return nil
}

// FieldXML is one <field> inside a <message>. Extension reports whether this
// field appeared after the <extensions/> marker in document order.
type FieldXML struct {
	Name      string
	Type      string
	EnumGroup string
	Extension bool
}

// MessageXML is one <message>. Regular/extension partitioning depends on
// document order relative to a single sibling <extensions/> marker, which
// struct-tag-based decoding of encoding/xml cannot express directly — hence
// the custom UnmarshalXML walking tokens in order.
type MessageXML struct {
	Id          string
	Name        string
	Description string
	Fields      []FieldXML
}

func (m *MessageXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "id":
			m.Id = a.Value
		case "name":
			m.Name = a.Value
		}
	}
	afterExtensions := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "description":
				var desc string
				if err := d.DecodeElement(&desc, &t); err != nil {
					return err
				}
				m.Description = desc
			case "extensions":
				afterExtensions = true
				if err := d.Skip(); err != nil {
					return err
				}
			case "field":
				var raw fieldAttrs
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "name":
						raw.Name = a.Value
					case "type":
						raw.Type = a.Value
					case "enum":
						raw.EnumGroup = a.Value
					}
				}
				if err := d.Skip(); err != nil {
					return err
				}
				m.Fields = append(m.Fields, FieldXML{
					Name:      raw.Name,
					Type:      raw.Type,
					EnumGroup: raw.EnumGroup,
					Extension: afterExtensions,
				})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "message" {
				return nil
			}
		}
	}
	return nil
}

type fieldAttrs struct {
	Name      string
	Type      string
	EnumGroup string
}

// ParseXML is a boundary convenience: it is not part of the core pipeline.
// Callers that already have a parsed tree (e.g. from a different XML
// library) should build a MavlinkXML directly and skip this.
func ParseXML(data []byte) (*MavlinkXML, error) {
	var tree MavlinkXML
	if err := xml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}
