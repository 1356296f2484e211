// Package types defines the compiled shape structures used by the codec.
//
// CompiledType records, for one Go type, which wire shape it maps to
// and how to reach its children (fields, elements, cases). Compiling
// the shape once and caching it keeps reflection lookups out of the
// encode and decode hot paths.
//
// # Key Types
//
//   - CompiledType: cached shape tree for a Go type
//   - Kind: shape discriminator (primitive, record, list, variant, etc.)
//
// This package is internal to the codec.
package types
