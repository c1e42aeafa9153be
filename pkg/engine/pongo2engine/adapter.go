package pongo2engine

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/schema"
)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	sanitizer *bluemonday.Policy
	globals   map[string]any
}

// WithSanitizer runs every HTML-encoded fragment's output through the given
// bluemonday policy after execution. Plain-text fragments are never sanitized.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// WithGlobals seeds values available to every compiled fragment in addition to
// the per-render data record.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// Engine compiles field templates through a pongo2 template set.
type Engine struct {
	set       *pongo2.TemplateSet
	sanitizer *bluemonday.Policy
}

var _ engine.Engine = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) *Engine {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	// Templates only ever arrive through FromString, but NewSet requires at
	// least one loader.
	set := pongo2.NewSet("docgen", pongo2.MustNewLocalFileSystemLoader(""))
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context, len(cfg.globals))
		}
		for key, value := range cfg.globals {
			set.Globals[key] = value
		}
	}

	return &Engine{set: set, sanitizer: cfg.sanitizer}
}

// Compile parses the raw template under the requested encoding. Escaping is
// pinned per fragment with an explicit autoescape block so the result does not
// depend on pongo2's process-wide autoescape state.
func (e *Engine) Compile(raw string, encoding schema.Encoding) (engine.Fragment, error) {
	if e == nil || e.set == nil {
		return nil, errors.New("pongo2engine: engine is nil")
	}

	var src string
	switch encoding {
	case schema.EncodingHTML:
		src = "{% autoescape on %}" + raw + "{% endautoescape %}"
	case schema.EncodingPlainText:
		src = "{% autoescape off %}" + raw + "{% endautoescape %}"
	default:
		return nil, fmt.Errorf("pongo2engine: unsupported encoding %q", encoding)
	}

	tpl, err := e.set.FromString(src)
	if err != nil {
		return nil, fmt.Errorf("pongo2engine: parse template: %w", err)
	}

	var sanitizer *bluemonday.Policy
	if encoding == schema.EncodingHTML {
		sanitizer = e.sanitizer
	}

	return &fragment{
		tpl:       tpl,
		vars:      ExtractRoots(raw),
		sanitizer: sanitizer,
	}, nil
}

type fragment struct {
	tpl       *pongo2.Template
	vars      []string
	sanitizer *bluemonday.Policy
}

var _ engine.Fragment = (*fragment)(nil)

func (f *fragment) Execute(data map[string]any) (string, error) {
	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = value
	}

	out, err := f.tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("pongo2engine: execute fragment: %w", err)
	}
	if f.sanitizer != nil {
		out = f.sanitizer.Sanitize(out)
	}
	return out, nil
}

func (f *fragment) Variables() []string {
	out := make([]string, len(f.vars))
	copy(out, f.vars)
	return out
}
