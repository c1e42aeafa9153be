// Package catalog loads document-template catalogs from YAML or JSON files
// and installs their schemas and templates into an assembly builder, so
// applications can keep authoring in configuration instead of code.
package catalog

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/assembly"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// Catalog is the file-level shape: data schemas, document schemas, and the
// per-locale templates written over them.
type Catalog struct {
	DataSchemas []DataSchema     `yaml:"dataSchemas" json:"dataSchemas"`
	Documents   []DocumentSchema `yaml:"documents" json:"documents"`
	Templates   []Template       `yaml:"templates" json:"templates"`
}

// DataSchema declares one data record type and its field vocabulary.
type DataSchema struct {
	Name   string   `yaml:"name" json:"name"`
	Fields []string `yaml:"fields" json:"fields"`
}

// DocumentSchema declares one output type with ordered field descriptors.
type DocumentSchema struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field is one document field descriptor as authored in a catalog file.
type Field struct {
	Name     string `yaml:"name" json:"name"`
	Nullable bool   `yaml:"nullable" json:"nullable"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

// Template is one locale's authoring unit keyed to a declared data schema.
type Template struct {
	Source  string            `yaml:"source" json:"source"`
	Locale  string            `yaml:"locale" json:"locale"`
	Targets []string          `yaml:"targets" json:"targets"`
	Fields  map[string]string `yaml:"fields" json:"fields"`
}

// Apply installs every document schema and template of the catalog into the
// builder, in file order. Templates must name a data schema declared in the
// same catalog.
func (c Catalog) Apply(builder *assembly.Builder) error {
	sources := make(map[string]schema.Data, len(c.DataSchemas))
	for _, data := range c.DataSchemas {
		if data.Name == "" {
			return fmt.Errorf("catalog: data schema with no name")
		}
		if _, dup := sources[data.Name]; dup {
			return fmt.Errorf("catalog: data schema %q declared twice", data.Name)
		}
		sources[data.Name] = schema.Data{Name: data.Name, Fields: data.Fields}
	}

	for _, doc := range c.Documents {
		fields := make([]schema.Field, 0, len(doc.Fields))
		for _, field := range doc.Fields {
			encoding, err := schema.ParseEncoding(field.Encoding)
			if err != nil {
				return fmt.Errorf("catalog: document %q field %q: %w", doc.Name, field.Name, err)
			}
			fields = append(fields, schema.Field{
				Name:     field.Name,
				Nullable: field.Nullable,
				Encoding: encoding,
			})
		}
		if err := builder.InstallDocumentSchema(schema.Document{Name: doc.Name, Fields: fields}); err != nil {
			return fmt.Errorf("catalog: install document %q: %w", doc.Name, err)
		}
	}

	for _, tpl := range c.Templates {
		source, ok := sources[tpl.Source]
		if !ok {
			return fmt.Errorf("catalog: template locale %q names undeclared data schema %q", tpl.Locale, tpl.Source)
		}
		def := template.Definition{
			Source:  source,
			Locale:  tpl.Locale,
			Targets: tpl.Targets,
			Fields:  tpl.Fields,
		}
		if err := builder.InstallTemplate(source, def); err != nil {
			return fmt.Errorf("catalog: install template source %q locale %q: %w", tpl.Source, tpl.Locale, err)
		}
	}
	return nil
}
