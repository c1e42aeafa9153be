package assembly

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/schema"
)

// schemaIndex records every registered document schema, keyed by schema name
// with registration order preserved. Field descriptors are resolved by
// iterating each target schema explicitly rather than through a flattened
// field-name index, so two documents sharing a field name never clobber each
// other's descriptors.
type schemaIndex struct {
	order []string
	docs  map[string]schema.Document
}

func newSchemaIndex() *schemaIndex {
	return &schemaIndex{docs: make(map[string]schema.Document)}
}

// install validates the descriptor list and registers the document schema.
func (ix *schemaIndex) install(doc schema.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("%w: document schema has no name", ErrInvalidSchema)
	}
	if len(doc.Fields) == 0 {
		return fmt.Errorf("%w: document schema %q declares no fields", ErrInvalidSchema, doc.Name)
	}
	seen := make(map[string]struct{}, len(doc.Fields))
	for _, field := range doc.Fields {
		if field.Name == "" {
			return fmt.Errorf("%w: document schema %q has an unnamed field", ErrInvalidSchema, doc.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("%w: document schema %q declares field %q twice", ErrInvalidSchema, doc.Name, field.Name)
		}
		if !field.Encoding.Valid() {
			return fmt.Errorf("%w: document schema %q field %q has unknown encoding %q", ErrInvalidSchema, doc.Name, field.Name, field.Encoding)
		}
		seen[field.Name] = struct{}{}
	}
	if _, exists := ix.docs[doc.Name]; !exists {
		ix.order = append(ix.order, doc.Name)
	}
	ix.docs[doc.Name] = doc
	return nil
}

func (ix *schemaIndex) get(name string) (schema.Document, bool) {
	doc, ok := ix.docs[name]
	return doc, ok
}

func (ix *schemaIndex) empty() bool {
	return len(ix.order) == 0
}

// names returns registered schema names in registration order.
func (ix *schemaIndex) names() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// descriptor resolves the field descriptor for an authored field by checking
// each target in declared order; the first target declaring the field wins.
func (ix *schemaIndex) descriptor(field string, targets []string) (schema.Field, bool) {
	for _, target := range targets {
		doc, ok := ix.docs[target]
		if !ok {
			continue
		}
		if desc, ok := doc.Field(field); ok {
			return desc, true
		}
	}
	return schema.Field{}, false
}
