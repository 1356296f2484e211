package types

import (
	"reflect"
)

// CompiledType is the cached wire shape of one Go type. It is built
// once per type and shared; the encoder and decoder walk it instead of
// re-deriving the shape from reflection on every call.
type CompiledType struct {
	GoType reflect.Type
	Elem   *CompiledType // list element, option payload, map value, tuple element
	Key    *CompiledType // map key
	Fields []Field       // record fields, declaration order
	Cases  []Case        // variant cases, declaration order
	Len    int           // array length for tuples
	Kind   Kind
}

// Field is one record field.
type Field struct {
	Type  *CompiledType
	Name  string
	Index int // struct field index
}

// Case is one variant case. Type is the payload shape behind the case's
// pointer field; the pointer itself is the selection mechanism, not an
// option.
type Case struct {
	Type  *CompiledType
	Name  string
	Index int // struct field index of the case's pointer field
}

func (ct *CompiledType) IsPrimitive() bool {
	return ct.Kind.IsPrimitive()
}
