package assembly

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-docgen/pkg/diag"
	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// compiler turns one installed definition into its compiled form: resolve
// each authored field's encoding, compile the raw string through the engine,
// then backfill an explicit no-content entry for every nullable target field
// the author omitted. The backfill keeps the compiled key set complete so
// renderers only ever need a null check for optional fields.
type compiler struct {
	engine          engine.Engine
	index           *schemaIndex
	defaultEncoding schema.Encoding
}

func (c *compiler) compile(def template.Definition) (template.Compiled, diag.List) {
	var errs diag.List

	compiled := template.Compiled{
		Source:  def.Source,
		Locale:  def.Locale,
		Targets: append([]string(nil), def.Targets...),
		Fields:  make(map[string]engine.Fragment, len(def.Fields)),
	}

	names := make([]string, 0, len(def.Fields))
	for name := range def.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		encoding := c.defaultEncoding
		if desc, ok := c.index.descriptor(name, def.Targets); ok && desc.Encoding != schema.EncodingUnspecified {
			encoding = desc.Encoding
		}

		fragment, err := c.engine.Compile(def.Fields[name], encoding)
		if err != nil {
			errs.Add(diag.Diagnostic{
				Kind:    diag.KindTemplateSyntax,
				Source:  def.Source.Name,
				Locale:  def.Locale,
				Field:   name,
				Message: fmt.Sprintf("source %q locale %q field %q: %v", def.Source.Name, def.Locale, name, err),
			})
			continue
		}
		compiled.Fields[name] = fragment
	}

	for _, name := range c.nullableTargetFields(def.Targets) {
		if _, authored := compiled.Fields[name]; !authored {
			compiled.Fields[name] = nil
		}
	}

	return compiled, errs
}

// nullableTargetFields unions the nullable field names across the targets, in
// target declaration order then descriptor order.
func (c *compiler) nullableTargetFields(targets []string) []string {
	var (
		out  []string
		seen = map[string]struct{}{}
	)
	for _, target := range targets {
		doc, ok := c.index.get(target)
		if !ok {
			continue
		}
		for _, field := range doc.Fields {
			if !field.Nullable {
				continue
			}
			if _, dup := seen[field.Name]; dup {
				continue
			}
			seen[field.Name] = struct{}{}
			out = append(out, field.Name)
		}
	}
	return out
}
