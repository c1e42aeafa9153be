package assembly

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/schema"
	"github.com/goliatone/go-docgen/pkg/template"
)

// table is the two-key relational structure at the heart of assembly: data
// schema name → locale → installed definition. Both levels preserve insertion
// order; locale order drives deterministic fallback in the final renderers.
type table struct {
	order []string
	rows  map[string]*row
}

type row struct {
	source schema.Data
	order  []string
	cells  map[string]template.Definition
}

func newTable() *table {
	return &table{rows: make(map[string]*row)}
}

// insert adds one definition under (source, locale). It is the single point
// of duplicate detection; no other validation happens at install time so that
// installation order stays irrelevant.
func (t *table) insert(source schema.Data, def template.Definition) error {
	r, ok := t.rows[source.Name]
	if !ok {
		r = &row{source: source, cells: make(map[string]template.Definition)}
		t.rows[source.Name] = r
		t.order = append(t.order, source.Name)
	}
	if _, exists := r.cells[def.Locale]; exists {
		return fmt.Errorf("%w: source %q, locale %q", ErrDuplicateTemplate, source.Name, def.Locale)
	}
	r.order = append(r.order, def.Locale)
	r.cells[def.Locale] = def
	return nil
}

func (t *table) empty() bool {
	return len(t.order) == 0
}

// walk visits every cell in insertion order: rows by source install order,
// cells by locale install order within each row.
func (t *table) walk(visit func(source schema.Data, locale string, def template.Definition)) {
	for _, name := range t.order {
		r := t.rows[name]
		for _, locale := range r.order {
			visit(r.source, locale, r.cells[locale])
		}
	}
}
