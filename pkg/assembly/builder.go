package assembly

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/engine/pongo2engine"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

var (
	// ErrDuplicateTemplate is returned when a definition for the same
	// (source, locale) pair is installed twice.
	ErrDuplicateTemplate = errors.New("assembly: template already installed")
	// ErrInvalidSchema is returned when a document schema cannot be
	// registered.
	ErrInvalidSchema = errors.New("assembly: invalid document schema")
)

// Option configures a Builder at construction time. Every option has a
// matching setter for callers that configure incrementally.
type Option func(*Builder)

// WithEngine overrides the templating engine used to compile fragments.
func WithEngine(e engine.Engine) Option {
	return func(b *Builder) {
		if e != nil {
			b.engine = e
		}
	}
}

// WithLocaleResolver sets the locale selection policy bound into every
// renderer the build produces.
func WithLocaleResolver(resolver render.LocaleResolver) Option {
	return func(b *Builder) {
		b.resolver = resolver
	}
}

// WithWarningsAsErrors makes advisory findings abort the build.
func WithWarningsAsErrors() Option {
	return func(b *Builder) {
		b.warningsAsErrors = true
	}
}

// WithDefaultEncoding sets the encoding used for fields whose descriptor
// carries no annotation.
func WithDefaultEncoding(encoding schema.Encoding) Option {
	return func(b *Builder) {
		b.defaultEncoding = encoding
	}
}

// Builder accumulates document schemas and per-locale template definitions,
// then Build runs the staged validator and freezes the renderer artifact.
// A Builder is for single-threaded configuration only.
type Builder struct {
	engine           engine.Engine
	table            *table
	index            *schemaIndex
	resolver         render.LocaleResolver
	warningsAsErrors bool
	defaultEncoding  schema.Encoding
}

// NewBuilder constructs a Builder. Without options it compiles through the
// pongo2 engine, resolves locales exact-then-first, and defaults fields to
// plain text encoding.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{
		engine:          pongo2engine.New(),
		table:           newTable(),
		index:           newSchemaIndex(),
		defaultEncoding: schema.EncodingPlainText,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// InstallDocumentSchema registers an output type. The descriptor list must be
// non-empty with unique, named fields; failures wrap ErrInvalidSchema.
func (b *Builder) InstallDocumentSchema(doc schema.Document) error {
	return b.index.install(doc)
}

// InstallTemplate inserts one locale's definition under the given data
// schema. Only duplicate (source, locale) pairs are rejected here, wrapping
// ErrDuplicateTemplate; all cross-checking is deferred to Build so that
// installation order is irrelevant.
func (b *Builder) InstallTemplate(source schema.Data, def template.Definition) error {
	if source.Name == "" {
		return fmt.Errorf("assembly: data schema has no name")
	}
	if def.Locale == "" {
		return fmt.Errorf("assembly: template definition for source %q has no locale", source.Name)
	}
	return b.table.insert(source, def)
}

// SetLocaleResolver replaces the locale selection policy.
func (b *Builder) SetLocaleResolver(resolver render.LocaleResolver) {
	b.resolver = resolver
}

// SetWarningsAsErrors toggles whether advisory findings abort the build.
func (b *Builder) SetWarningsAsErrors(enabled bool) {
	b.warningsAsErrors = enabled
}

// SetDefaultEncoding replaces the builder-wide fallback encoding.
func (b *Builder) SetDefaultEncoding(encoding schema.Encoding) {
	b.defaultEncoding = encoding
}

// Build runs the validation pipeline end to end. On success it returns the
// frozen artifact; on failure the returned error is a *diag.AssemblyError
// carrying every diagnostic collected up to the aborting stage. Build is
// deterministic and idempotent for the same installations.
func (b *Builder) Build() (*render.Artifact, error) {
	v := newValidator(b)
	return v.run()
}
