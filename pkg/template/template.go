// Package template defines the authored and compiled forms of a per-locale
// document template. Definitions are the installation unit accepted by the
// assembly builder; compiled templates are produced once by a successful build
// and never mutated afterwards.
package template

import (
	"github.com/goliatone/go-docgen/pkg/engine"
	"github.com/goliatone/go-docgen/pkg/schema"
)

// Definition is one locale's authoring unit: a mapping from document field
// name to raw template string, written against one data schema and aimed at a
// set of registered document schemas.
type Definition struct {
	Source  schema.Data
	Locale  string
	Targets []string
	Fields  map[string]string
}

// Compiled is the validated, engine-compiled form of a Definition. Its field
// map carries one entry per authored field plus an explicit nil entry for
// every nullable target field the author omitted, so renderers only ever need
// a null check, never an existence check.
type Compiled struct {
	Source  schema.Data
	Locale  string
	Targets []string
	Fields  map[string]engine.Fragment
}

// Variables returns the set of variable roots referenced across every
// compiled fragment.
func (c Compiled) Variables() map[string]struct{} {
	refs := make(map[string]struct{})
	for _, fragment := range c.Fields {
		if fragment == nil {
			continue
		}
		for _, name := range fragment.Variables() {
			refs[name] = struct{}{}
		}
	}
	return refs
}
