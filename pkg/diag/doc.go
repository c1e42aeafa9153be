// Package diag models assembly diagnostics as structured values — a kind plus
// contextual fields — with presentation kept separate, so callers can match on
// what went wrong without parsing message text.
package diag
