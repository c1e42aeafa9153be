// Package openapi derives docgen schemas from OpenAPI component schemas, so
// document and data descriptors can be generated from the same contract that
// describes an API instead of being hand-written twice.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docgen/pkg/schema"
)

// EncodingExtension is the vendor extension consulted on a property schema to
// pick the field's output encoding.
const EncodingExtension = "x-docgen-encoding"

// Load parses an OpenAPI document from raw bytes using kin-openapi.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return spec, nil
}

// DocumentSchema derives ordered field descriptors from the named component
// schema: one descriptor per property in sorted name order, nullable unless
// the property is listed as required, encoding taken from the
// x-docgen-encoding extension when present.
func DocumentSchema(spec *openapi3.T, component string) (schema.Document, error) {
	value, err := componentSchema(spec, component)
	if err != nil {
		return schema.Document{}, err
	}

	required := make(map[string]struct{}, len(value.Required))
	for _, name := range value.Required {
		required[name] = struct{}{}
	}

	fields := make([]schema.Field, 0, len(value.Properties))
	for _, name := range sortedPropertyNames(value) {
		encoding, err := propertyEncoding(value.Properties[name])
		if err != nil {
			return schema.Document{}, fmt.Errorf("openapi: component %q property %q: %w", component, name, err)
		}
		_, isRequired := required[name]
		fields = append(fields, schema.Field{
			Name:     name,
			Nullable: !isRequired,
			Encoding: encoding,
		})
	}

	return schema.Document{Name: component, Fields: fields}, nil
}

// DataSchema derives a data schema from the named component: the property
// names become the template variable vocabulary.
func DataSchema(spec *openapi3.T, component string) (schema.Data, error) {
	value, err := componentSchema(spec, component)
	if err != nil {
		return schema.Data{}, err
	}
	return schema.Data{Name: component, Fields: sortedPropertyNames(value)}, nil
}

func componentSchema(spec *openapi3.T, component string) (*openapi3.Schema, error) {
	if spec == nil || spec.Components == nil {
		return nil, errors.New("openapi: document has no components")
	}
	ref, ok := spec.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: component schema %q not found", component)
	}
	if len(ref.Value.Properties) == 0 {
		return nil, fmt.Errorf("openapi: component schema %q declares no properties", component)
	}
	return ref.Value, nil
}

func sortedPropertyNames(value *openapi3.Schema) []string {
	names := make([]string, 0, len(value.Properties))
	for name := range value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func propertyEncoding(ref *openapi3.SchemaRef) (schema.Encoding, error) {
	if ref == nil || ref.Value == nil {
		return schema.EncodingUnspecified, nil
	}
	raw, ok := ref.Value.Extensions[EncodingExtension]
	if !ok {
		return schema.EncodingUnspecified, nil
	}
	text, ok := raw.(string)
	if !ok {
		return schema.EncodingUnspecified, fmt.Errorf("extension %s must be a string", EncodingExtension)
	}
	return schema.ParseEncoding(text)
}
