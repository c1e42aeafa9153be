package assembly

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-docgen/pkg/diag"
	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// validator drives the ordered validation passes over the template table and
// schema index. Every stage appends to the shared diagnostic lists and the
// pipeline re-checks between stages, aborting with everything collected so
// far when errors exist — or warnings exist under warnings-as-errors. The
// early abort keeps structural problems from flooding the report with their
// per-field consequences.
type validator struct {
	builder  *Builder
	errs     diag.List
	warns    diag.List
	compiled map[string]map[string]template.Compiled
}

func newValidator(b *Builder) *validator {
	return &validator{
		builder:  b,
		compiled: make(map[string]map[string]template.Compiled),
	}
}

func (v *validator) run() (*render.Artifact, error) {
	stages := []func(){
		v.stageSanity,
		v.stageCompile,
		v.stageCrossValidate,
		v.stageUnusedVariables,
	}
	for _, stage := range stages {
		stage()
		if err := v.checkpoint(); err != nil {
			return nil, err
		}
	}
	return v.assemble(), nil
}

func (v *validator) checkpoint() error {
	if len(v.errs) > 0 || (v.builder.warningsAsErrors && len(v.warns) > 0) {
		return &diag.AssemblyError{Errors: v.errs, Warnings: v.warns}
	}
	return nil
}

// stageSanity flags structural problems before any per-field work: nothing
// installed, or document schemas no installed template ever targets.
func (v *validator) stageSanity() {
	if v.builder.table.empty() {
		v.warns.Addf(diag.KindEmptyRegistry, "no templates installed")
	}
	if v.builder.index.empty() {
		v.warns.Addf(diag.KindEmptyRegistry, "no document schemas registered")
	}

	targeted := make(map[string]struct{})
	v.builder.table.walk(func(_ schema.Data, _ string, def template.Definition) {
		for _, target := range def.Targets {
			targeted[target] = struct{}{}
		}
	})
	for _, name := range v.builder.index.names() {
		if _, ok := targeted[name]; !ok {
			v.warns.Add(diag.Diagnostic{
				Kind:    diag.KindDanglingDocument,
				Target:  name,
				Message: fmt.Sprintf("document schema %q is not targeted by any installed template", name),
			})
		}
	}
}

// stageCompile checks each cell's structural integrity — the definition
// belongs to its row and every declared target is registered — then compiles
// clean cells through the template compiler.
func (v *validator) stageCompile() {
	c := &compiler{
		engine:          v.builder.engine,
		index:           v.builder.index,
		defaultEncoding: v.builder.defaultEncoding,
	}

	v.builder.table.walk(func(source schema.Data, locale string, def template.Definition) {
		cellErrs := len(v.errs)

		if def.Source.Name != source.Name {
			v.errs.Add(diag.Diagnostic{
				Kind:    diag.KindSourceMismatch,
				Source:  source.Name,
				Locale:  locale,
				Message: fmt.Sprintf("definition installed under source %q declares source %q (locale %q)", source.Name, def.Source.Name, locale),
			})
		}
		if len(def.Targets) == 0 {
			v.errs.Add(diag.Diagnostic{
				Kind:    diag.KindInvalidSchema,
				Source:  source.Name,
				Locale:  locale,
				Message: fmt.Sprintf("template for source %q locale %q declares no targets", source.Name, locale),
			})
		}
		for _, target := range def.Targets {
			if _, ok := v.builder.index.get(target); !ok {
				v.errs.Add(diag.Diagnostic{
					Kind:    diag.KindUnregisteredTarget,
					Source:  source.Name,
					Locale:  locale,
					Target:  target,
					Message: fmt.Sprintf("template for source %q locale %q targets unregistered document %q", source.Name, locale, target),
				})
			}
		}
		if len(v.errs) > cellErrs {
			return
		}

		compiled, errs := c.compile(def)
		v.errs = append(v.errs, errs...)
		if v.compiled[source.Name] == nil {
			v.compiled[source.Name] = make(map[string]template.Compiled)
		}
		v.compiled[source.Name][locale] = compiled
	})
}

// stageCrossValidate performs the field-level checks per compiled cell:
// unknown variables, required-field coverage across the union of targets,
// extra authored fields, and target reachability over the installed rows.
func (v *validator) stageCrossValidate() {
	v.builder.table.walk(func(source schema.Data, locale string, def template.Definition) {
		compiled, ok := v.compiled[source.Name][locale]
		if !ok {
			return
		}

		v.checkVariables(source, locale, compiled)
		v.checkFieldCoverage(source, locale, def)
		v.checkReachability(source, locale, def)
	})
}

func (v *validator) checkVariables(source schema.Data, locale string, compiled template.Compiled) {
	fields := make([]string, 0, len(compiled.Fields))
	for name, fragment := range compiled.Fields {
		if fragment != nil {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, variable := range compiled.Fields[field].Variables() {
			if source.HasField(variable) {
				continue
			}
			v.errs.Add(diag.Diagnostic{
				Kind:     diag.KindMissingVariable,
				Source:   source.Name,
				Locale:   locale,
				Field:    field,
				Variable: variable,
				Message:  fmt.Sprintf("field %q references variable %q missing from data schema %q (locale %q)", field, variable, source.Name, locale),
			})
		}
	}
}

func (v *validator) checkFieldCoverage(source schema.Data, locale string, def template.Definition) {
	allFields := make(map[string]struct{})
	requiredBy := make(map[string][]string)
	var requiredOrder []string

	for _, target := range def.Targets {
		doc, ok := v.builder.index.get(target)
		if !ok {
			continue
		}
		for _, name := range doc.FieldNames() {
			allFields[name] = struct{}{}
		}
		for _, name := range doc.RequiredFieldNames() {
			if _, seen := requiredBy[name]; !seen {
				requiredOrder = append(requiredOrder, name)
			}
			requiredBy[name] = append(requiredBy[name], target)
		}
	}

	for _, name := range requiredOrder {
		if _, authored := def.Fields[name]; authored {
			continue
		}
		v.errs.Add(diag.Diagnostic{
			Kind:    diag.KindMissingRequiredField,
			Source:  source.Name,
			Locale:  locale,
			Field:   name,
			Message: fmt.Sprintf("template for source %q locale %q omits field %q required by %s", source.Name, locale, name, strings.Join(requiredBy[name], ", ")),
		})
	}

	authored := make([]string, 0, len(def.Fields))
	for name := range def.Fields {
		authored = append(authored, name)
	}
	sort.Strings(authored)
	for _, name := range authored {
		if _, declared := allFields[name]; declared {
			continue
		}
		v.errs.Add(diag.Diagnostic{
			Kind:    diag.KindExtraField,
			Source:  source.Name,
			Locale:  locale,
			Field:   name,
			Message: fmt.Sprintf("template for source %q locale %q authors field %q that no target declares", source.Name, locale, name),
		})
	}
}

// checkReachability confirms each declared target is actually served by at
// least one installed row for the source — a guard against targets that are
// valid at the schema level but unreachable through the installed locales.
func (v *validator) checkReachability(source schema.Data, locale string, def template.Definition) {
	row, ok := v.builder.table.rows[source.Name]
	for _, target := range def.Targets {
		reachable := false
		if ok {
			for _, rowLocale := range row.order {
				cell := row.cells[rowLocale]
				for _, cellTarget := range cell.Targets {
					if cellTarget == target {
						reachable = true
						break
					}
				}
				if reachable {
					break
				}
			}
		}
		if !reachable {
			v.errs.Add(diag.Diagnostic{
				Kind:    diag.KindUnreachableTarget,
				Source:  source.Name,
				Locale:  locale,
				Target:  target,
				Message: fmt.Sprintf("target %q is not reachable through any installed template row for source %q", target, source.Name),
			})
		}
	}
}

// stageUnusedVariables audits each data schema after all of its locales have
// compiled: a source field no locale ever references is advisory noise in the
// schema, reported as a warning.
func (v *validator) stageUnusedVariables() {
	for _, name := range v.builder.table.order {
		row := v.builder.table.rows[name]
		cells, ok := v.compiled[name]
		if !ok {
			continue
		}

		referenced := make(map[string]struct{})
		for _, locale := range row.order {
			compiled, ok := cells[locale]
			if !ok {
				continue
			}
			for variable := range compiled.Variables() {
				referenced[variable] = struct{}{}
			}
		}

		for _, field := range row.source.Fields {
			if _, used := referenced[field]; used {
				continue
			}
			v.warns.Add(diag.Diagnostic{
				Kind:     diag.KindUnusedDataField,
				Source:   name,
				Variable: field,
				Message:  fmt.Sprintf("data schema %q field %q is never referenced by locales %s", name, field, strings.Join(row.order, ", ")),
			})
		}
	}
}

// assemble converts the validated, compiled table into the frozen artifact:
// one renderer per (data schema, target document) pair. Each renderer holds
// only the locale variants whose definitions declare its target, so the
// required-field guarantees established per template hold for every variant a
// renderer can select. Insertion order follows table walk order so enumeration
// is deterministic.
func (v *validator) assemble() *render.Artifact {
	var renderers []*render.Renderer
	seen := make(map[render.Key]struct{})

	v.builder.table.walk(func(source schema.Data, locale string, def template.Definition) {
		row := v.builder.table.rows[source.Name]
		for _, target := range def.Targets {
			key := render.Key{Data: source.Name, Document: target}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			doc, ok := v.builder.index.get(target)
			if !ok {
				continue
			}

			locales := make([]string, 0, len(row.order))
			variants := make(map[string]template.Compiled, len(row.order))
			for _, rowLocale := range row.order {
				compiled, ok := v.compiled[source.Name][rowLocale]
				if !ok || !declaresTarget(compiled.Targets, target) {
					continue
				}
				locales = append(locales, rowLocale)
				variants[rowLocale] = compiled
			}
			doc = resolveEncodings(doc, v.builder.defaultEncoding)
			renderers = append(renderers, render.NewRenderer(doc, source, locales, variants, v.builder.resolver))
		}
	})

	return render.NewArtifact(renderers, v.warns)
}

func declaresTarget(targets []string, target string) bool {
	for _, candidate := range targets {
		if candidate == target {
			return true
		}
	}
	return false
}

// resolveEncodings replaces unspecified field encodings with the builder-wide
// default so the frozen renderer advertises the encodings its fragments were
// actually compiled under.
func resolveEncodings(doc schema.Document, fallback schema.Encoding) schema.Document {
	fields := make([]schema.Field, len(doc.Fields))
	copy(fields, doc.Fields)
	for i := range fields {
		if fields[i].Encoding == schema.EncodingUnspecified {
			fields[i].Encoding = fallback
		}
	}
	doc.Fields = fields
	return doc
}
