// Package engine defines the seam between the assembly pipeline and the
// external templating library. The pipeline only needs two capabilities from
// an engine: compile a raw field template under an encoding, and report which
// top-level variables a compiled fragment references.
package engine

import "github.com/goliatone/go-docgen/pkg/schema"

// Fragment is one compiled field template, immutable and safe for concurrent
// execution.
type Fragment interface {
	// Execute substitutes the data record into the fragment.
	Execute(data map[string]any) (string, error)
	// Variables returns the root names referenced by the fragment: the first
	// path segment of every dotted or nested reference, deduplicated, in
	// first-appearance order.
	Variables() []string
}

// Engine compiles raw template strings into executable fragments.
type Engine interface {
	Compile(raw string, encoding schema.Encoding) (Fragment, error)
}
