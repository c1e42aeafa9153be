package diag

import (
	"fmt"
	"strings"
)

// Diagnostic kinds emitted by the assembly pipeline. Hard failures and
// advisory warnings share the same shape; severity is carried by which list a
// diagnostic lands on.
const (
	KindDuplicateTemplate    = "duplicate_template"
	KindInvalidSchema        = "invalid_schema"
	KindSourceMismatch       = "source_mismatch"
	KindUnregisteredTarget   = "unregistered_target"
	KindTemplateSyntax       = "template_syntax"
	KindMissingVariable      = "missing_variable"
	KindMissingRequiredField = "missing_required_field"
	KindExtraField           = "extra_field"
	KindUnreachableTarget    = "unreachable_target"

	KindEmptyRegistry    = "empty_registry"
	KindDanglingDocument = "dangling_document"
	KindUnusedDataField  = "unused_data_field"
)

// Diagnostic is one validation finding. Contextual fields are populated where
// they apply; Message is the human-readable rendering and is always set.
type Diagnostic struct {
	Kind     string
	Source   string // data schema name
	Locale   string
	Target   string // document schema name
	Field    string
	Variable string
	Message  string
}

// String returns the human-readable form, prefixed with the diagnostic kind.
func (d Diagnostic) String() string {
	if d.Message == "" {
		return d.Kind
	}
	return d.Kind + ": " + d.Message
}

// New builds a diagnostic with a formatted message.
func New(kind, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends a diagnostic built from a formatted message.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Addf appends a diagnostic with the given kind and formatted message.
func (l *List) Addf(kind, format string, args ...any) {
	*l = append(*l, New(kind, format, args...))
}

// Strings renders every diagnostic in order.
func (l List) Strings() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, d := range l {
		out = append(out, d.String())
	}
	return out
}

// Has reports whether any diagnostic of the given kind is present.
func (l List) Has(kind string) bool {
	for _, d := range l {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// AssemblyError aggregates every diagnostic collected before the build
// aborted. Warnings are included so callers can tell hard failures from
// advisory issues even under warnings-as-errors.
type AssemblyError struct {
	Errors   List
	Warnings List
}

// Error summarises the failure; the full lists remain available on the value.
func (e *AssemblyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "docgen: assembly failed with %d error(s)", len(e.Errors))
	if len(e.Warnings) > 0 {
		fmt.Fprintf(&b, ", %d warning(s)", len(e.Warnings))
	}
	const maxShown = 3
	shown := len(e.Errors)
	if shown > maxShown {
		shown = maxShown
	}
	for i := 0; i < shown; i++ {
		b.WriteString("; ")
		b.WriteString(e.Errors[i].String())
	}
	if len(e.Errors) > shown {
		fmt.Fprintf(&b, "; ... (%d more)", len(e.Errors)-shown)
	}
	return b.String()
}
