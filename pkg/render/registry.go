package render

import (
	"fmt"

	"github.com/goliatone/go-docgen/pkg/diag"
)

// Key identifies one renderer in the artifact: the (data schema, document
// schema) pair it serves.
type Key struct {
	Data     string
	Document string
}

// String renders the key for diagnostics and logs.
func (k Key) String() string {
	return fmt.Sprintf("%s->%s", k.Data, k.Document)
}

// Artifact is the frozen renderer registry produced by a successful build.
// It is never mutated after construction, so lookups and enumeration are safe
// for unsynchronized concurrent use.
type Artifact struct {
	keys      []Key
	renderers map[Key]*Renderer
	warnings  diag.List
}

// NewArtifact freezes the given renderers in slice order. Renderer keys are
// derived from each renderer's source and target schemas; later duplicates of
// a key are ignored, preserving first-insertion order.
func NewArtifact(renderers []*Renderer, warnings diag.List) *Artifact {
	artifact := &Artifact{
		renderers: make(map[Key]*Renderer, len(renderers)),
		warnings:  append(diag.List(nil), warnings...),
	}
	for _, renderer := range renderers {
		if renderer == nil {
			continue
		}
		key := Key{Data: renderer.Source().Name, Document: renderer.Target().Name}
		if _, exists := artifact.renderers[key]; exists {
			continue
		}
		artifact.keys = append(artifact.keys, key)
		artifact.renderers[key] = renderer
	}
	return artifact
}

// Get retrieves the renderer for a (data schema, document schema) pair.
func (a *Artifact) Get(dataType, documentType string) (*Renderer, bool) {
	renderer, ok := a.renderers[Key{Data: dataType, Document: documentType}]
	return renderer, ok
}

// MustGet panics if the pair has no renderer. Useful for init-time wiring.
func (a *Artifact) MustGet(dataType, documentType string) *Renderer {
	renderer, ok := a.Get(dataType, documentType)
	if !ok {
		panic(fmt.Sprintf("render: no renderer for %s->%s", dataType, documentType))
	}
	return renderer
}

// Keys enumerates registered pairs in insertion order.
func (a *Artifact) Keys() []Key {
	out := make([]Key, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len reports the number of renderers in the artifact.
func (a *Artifact) Len() int {
	return len(a.keys)
}

// Warnings returns the advisory diagnostics accumulated by the build that
// produced this artifact.
func (a *Artifact) Warnings() diag.List {
	return append(diag.List(nil), a.warnings...)
}
