// Package schema compiles textual shape descriptions into the wire
// semantics of the codec package, for tooling that has no Go struct
// to decode into.
//
// A schema document is YAML (or JSONC) with named type definitions
// and a single root shape:
//
//	types:
//	  point:
//	    record:
//	      x: u32
//	      y: u32
//	root: list<point>
//
// Decoded values are generic: records and variants become
// map[string]any, lists become []any, options become nil or the
// payload value. Encode accepts the same generic forms.
//
// The trust-on-decode contract of the codec package applies here
// unchanged: the wire format carries no type information, and the
// schema must match what the producer encoded.
package schema
