package docgen

import (
	"io/fs"

	"github.com/goliatone/go-docgen/internal/catalog"
	"github.com/goliatone/go-docgen/pkg/assembly"
	"github.com/goliatone/go-docgen/pkg/diag"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// Builder accumulates schemas and templates; Build freezes the artifact.
type Builder = assembly.Builder

// Option configures a Builder at construction time.
type Option = assembly.Option

// Data identifies a registered data record type.
type Data = schema.Data

// Document identifies a registered output record type.
type Document = schema.Document

// Field is one document field descriptor.
type Field = schema.Field

// Encoding selects the escaping strategy for a field's template.
type Encoding = schema.Encoding

// Definition is one locale's authored template unit.
type Definition = template.Definition

// Artifact is the frozen renderer registry produced by a successful build.
type Artifact = render.Artifact

// Renderer produces documents for one (data schema, document schema) pair.
type Renderer = render.Renderer

// LocaleResolver selects which installed locale serves a request.
type LocaleResolver = render.LocaleResolver

// AssemblyError carries the ordered error and warning lists of a failed build.
type AssemblyError = diag.AssemblyError

const (
	EncodingPlainText = schema.EncodingPlainText
	EncodingHTML      = schema.EncodingHTML
)

// New constructs a Builder wired with the default pongo2-backed engine. It is
// the simplest entry point for callers assembling schemas and templates in
// code.
func New(options ...Option) *Builder {
	return assembly.NewBuilder(options...)
}

// WithLocaleResolver re-exports the builder option for root-package callers.
func WithLocaleResolver(resolver LocaleResolver) Option {
	return assembly.WithLocaleResolver(resolver)
}

// WithWarningsAsErrors makes advisory findings abort the build.
func WithWarningsAsErrors() Option {
	return assembly.WithWarningsAsErrors()
}

// WithDefaultEncoding sets the fallback encoding for unannotated fields.
func WithDefaultEncoding(encoding Encoding) Option {
	return assembly.WithDefaultEncoding(encoding)
}

// ApplyCatalog loads a YAML or JSON catalog file from the filesystem and
// installs its document schemas and templates into the builder. The format is
// picked from the file extension; embedded filesystems work via fs.FS.
func ApplyCatalog(builder *Builder, fsys fs.FS, name string) error {
	parsed, err := catalog.Load(fsys, name)
	if err != nil {
		return err
	}
	return parsed.Apply(builder)
}

// ApplyCatalogBytes installs a catalog from already-loaded YAML bytes.
func ApplyCatalogBytes(builder *Builder, data []byte) error {
	parsed, err := catalog.Parse(data, catalog.FormatYAML)
	if err != nil {
		return err
	}
	return parsed.Apply(builder)
}
