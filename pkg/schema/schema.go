package schema

import (
	"fmt"
	"strings"
)

// Encoding selects the escaping strategy applied when a field's template is
// compiled. The zero value defers to the builder-wide default.
type Encoding string

const (
	EncodingUnspecified Encoding = ""
	EncodingPlainText   Encoding = "plaintext"
	EncodingHTML        Encoding = "html"
)

// ParseEncoding converts a textual encoding name (as found in catalog files or
// OpenAPI extensions) into an Encoding. Empty input maps to
// EncodingUnspecified.
func ParseEncoding(value string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return EncodingUnspecified, nil
	case "plaintext", "plain", "text":
		return EncodingPlainText, nil
	case "html":
		return EncodingHTML, nil
	default:
		return EncodingUnspecified, fmt.Errorf("schema: unknown encoding %q", value)
	}
}

// Valid reports whether the encoding is one of the recognised values,
// including the unspecified zero value.
func (e Encoding) Valid() bool {
	switch e {
	case EncodingUnspecified, EncodingPlainText, EncodingHTML:
		return true
	}
	return false
}

// ContentType returns the MIME type renderers advertise for output produced
// under this encoding.
func (e Encoding) ContentType() string {
	if e == EncodingHTML {
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Field describes one named slot of a document schema: whether a template may
// omit it and which escaping strategy its content is compiled under.
type Field struct {
	Name     string
	Nullable bool
	Encoding Encoding
}

// Document identifies an output record type by a stable name plus the ordered
// field descriptors derived from its construction shape. Descriptors are
// provided explicitly (hand-written or generated); nothing is inferred from
// runtime type information.
type Document struct {
	Name   string
	Fields []Field
}

// Field returns the descriptor for the named field.
func (d Document) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared field names in descriptor order.
func (d Document) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}

// RequiredFieldNames returns the non-nullable subset of FieldNames, in
// descriptor order.
func (d Document) RequiredFieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		if !field.Nullable {
			names = append(names, field.Name)
		}
	}
	return names
}

// Data identifies a data record type whose named fields are the vocabulary
// available to templates written against it. Field names carry no inherent
// ordering.
type Data struct {
	Name   string
	Fields []string
}

// HasField reports whether the data schema declares the named field.
func (d Data) HasField(name string) bool {
	for _, field := range d.Fields {
		if field == name {
			return true
		}
	}
	return false
}
