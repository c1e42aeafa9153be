// Package assembly implements the two-stage build pipeline: a Builder that
// accumulates document schemas and per-locale template definitions into a
// relational index, and a multi-pass validator/compiler that proves
// referential integrity across them before freezing render-ready artifacts.
// Assembly is a single-threaded configuration phase; everything it produces
// is immutable and safe for concurrent reads.
package assembly
