// Package schema defines the explicit descriptor contract for document data
// sources and document outputs. Registered types describe themselves through
// static (name, nullable, encoding) descriptors so the assembly pipeline can
// cross-check templates without any runtime reflection.
package schema
