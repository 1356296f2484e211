// Package codec encodes and decodes structured Go values in the
// pinecone wire format.
//
// # Wire Format
//
// The format is packed with zero padding and carries no names, tags,
// versions or checksums. Per shape:
//
//	Shape           Encoding
//	─────────────────────────────────────────────────────────
//	bool            1 byte, 0 or 1
//	u8..u64         raw little-endian, fixed width
//	s8..s64         raw little-endian, fixed width
//	f32/f64         IEEE bits, little-endian
//	uint, uintptr   varint (7 bits per byte, LSB group first)
//	codec.Char      fixed 32-bit little-endian code point
//	string          varint byte length + UTF-8 bytes
//	[]byte          varint byte length + raw bytes
//	[]T             varint element count + elements
//	map[K]V         varint pair count + key,value pairs
//	struct          fields in declaration order, no prefix
//	[N]T            N elements back to back, no prefix
//	*T              1-byte presence tag; payload follows if 1
//	variant struct  varint case index + active case payload
//
// Lengths, counts and discriminants are always varints, never fixed
// width, so any of them below 128 costs a single byte.
//
// # Shape Derivation
//
// A Compiler maps each Go type to a cached shape tree once; the
// encoder and decoder walk that tree. Struct fields are taken in
// declaration order; unexported fields and fields tagged `pine:"-"`
// are skipped and do not exist on the wire. Platform-width int has no
// wire representation and is rejected at compile; use a sized integer
// type or uint.
//
// # Trust on Decode
//
// The decoder does not verify that the input was produced by encoding
// a value of the requested shape. Decoding into the wrong shape walks
// the bytes against the wrong interpretation: it may yield a
// syntactically valid but meaningless value, consume the wrong number
// of bytes, or trip one of the structural checks, and only those
// checks are ever performed (cursor exhaustion, varint overflow,
// boolean and option tag bytes, Unicode scalar range, UTF-8 validity,
// discriminant bounds). This is a deliberate size/speed trade-off, not
// a validation layer; both ends must agree on the shape out of band.
//
// Marshal and MarshalInto produce bytes; Unmarshal consumes an entire
// buffer and reports trailing garbage, while UnmarshalRest decodes one
// value and hands back the remainder.
package codec
