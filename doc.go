// Package docgen assembles strongly-typed document renderers from registered
// data schemas, document schemas, and per-locale templates. All referential
// integrity — every template variable exists in its data source, every
// required document field is authored — is proven at build time by a staged
// validator; the resulting artifact is immutable and safe for concurrent
// renders.
package docgen
