package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// ErrNoLocale is returned when the resolver cannot pick any installed locale
// for a render call.
var ErrNoLocale = errors.New("render: no locale available")

// Document is one rendered output: every field declared by the target schema,
// mapped to its rendered string or to nil when a nullable field had no
// authored content in the selected locale.
type Document struct {
	Type   string
	Locale string
	Fields map[string]any
}

// Renderer produces documents of a single target schema from records of a
// single data schema. It holds every installed locale variant for the source
// and is immutable; concurrent Render calls share no mutable state.
type Renderer struct {
	target   schema.Document
	source   schema.Data
	locales  []string
	variants map[string]template.Compiled
	resolver LocaleResolver
}

// NewRenderer binds a validated target schema to its compiled locale
// variants. Locales carry installation order; variants maps each of them to
// its compiled template.
func NewRenderer(target schema.Document, source schema.Data, locales []string, variants map[string]template.Compiled, resolver LocaleResolver) *Renderer {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	return &Renderer{
		target:   target,
		source:   source,
		locales:  locales,
		variants: variants,
		resolver: resolver,
	}
}

// Target returns the document schema this renderer produces.
func (r *Renderer) Target() schema.Document {
	return r.target
}

// Source returns the data schema this renderer consumes.
func (r *Renderer) Source() schema.Data {
	return r.source
}

// Locales lists the locales this renderer can serve, in installation order.
func (r *Renderer) Locales() []string {
	out := make([]string, len(r.locales))
	copy(out, r.locales)
	return out
}

// ContentType returns the MIME type of documents this renderer produces:
// text/html when any target field is HTML-encoded, text/plain otherwise.
func (r *Renderer) ContentType() string {
	for _, field := range r.target.Fields {
		if field.Encoding == schema.EncodingHTML {
			return schema.EncodingHTML.ContentType()
		}
	}
	return schema.EncodingPlainText.ContentType()
}

// Render selects a locale variant for the request and constructs one document
// from the data record. Field substitution happens through the fragments
// compiled at build time; no compilation or validation occurs here.
func (r *Renderer) Render(ctx context.Context, data map[string]any, locale string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	selected, ok := r.resolver.Resolve(locale, r.Locales())
	if !ok {
		return Document{}, fmt.Errorf("%w: document %q, requested %q", ErrNoLocale, r.target.Name, locale)
	}
	compiled, ok := r.variants[selected]
	if !ok {
		return Document{}, fmt.Errorf("render: resolver chose uninstalled locale %q for document %q", selected, r.target.Name)
	}

	doc := Document{
		Type:   r.target.Name,
		Locale: selected,
		Fields: make(map[string]any, len(r.target.Fields)),
	}
	for _, field := range r.target.Fields {
		fragment, authored := compiled.Fields[field.Name]
		if !authored || fragment == nil {
			if !field.Nullable {
				return Document{}, fmt.Errorf("render: field %q of document %q has no content in locale %q", field.Name, r.target.Name, selected)
			}
			doc.Fields[field.Name] = nil
			continue
		}
		value, err := fragment.Execute(data)
		if err != nil {
			return Document{}, fmt.Errorf("render: field %q of document %q: %w", field.Name, r.target.Name, err)
		}
		doc.Fields[field.Name] = value
	}
	return doc, nil
}
