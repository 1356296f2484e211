package codec

import (
	"github.com/Dentosal/pinecone"
	"github.com/Dentosal/pinecone/internal/types"
)

// Sink is the write destination for encoded bytes. Alias of the root
// contract so consumers import only this package.
type Sink = pinecone.Sink

type Kind = types.Kind

const (
	KindBool    = types.KindBool
	KindU8      = types.KindU8
	KindS8      = types.KindS8
	KindU16     = types.KindU16
	KindS16     = types.KindS16
	KindU32     = types.KindU32
	KindS32     = types.KindS32
	KindU64     = types.KindU64
	KindS64     = types.KindS64
	KindF32     = types.KindF32
	KindF64     = types.KindF64
	KindUint    = types.KindUint
	KindChar    = types.KindChar
	KindString  = types.KindString
	KindBytes   = types.KindBytes
	KindRecord  = types.KindRecord
	KindTuple   = types.KindTuple
	KindList    = types.KindList
	KindMap     = types.KindMap
	KindOption  = types.KindOption
	KindVariant = types.KindVariant
)

type CompiledType = types.CompiledType
type CompiledField = types.Field
type CompiledCase = types.Case

// Char is a single Unicode scalar value. It encodes as a fixed-width
// 32-bit little-endian code point, unlike rune/int32, which encodes as
// a plain signed 32-bit integer.
type Char rune

// Variant marks a struct as a tagged union. Embed it, then declare one
// exported pointer field per case in wire order; exactly one must be
// non-nil when encoding. The wire carries the zero-based case index as
// a varint followed by the active case's payload:
//
//	type Shape struct {
//	    codec.Variant
//	    Circle *float64
//	    Rect   *[2]float64
//	    Empty  *codec.Unit
//	}
type Variant struct{}

// Unit is a zero-size payload for variant cases that carry no data. It
// occupies no bytes on the wire.
type Unit struct{}
