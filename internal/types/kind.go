package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindUint
	KindChar
	KindString
	KindBytes
	KindRecord
	KindTuple
	KindList
	KindMap
	KindOption
	KindVariant
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindUint:    "uint",
	KindChar:    "char",
	KindString:  "string",
	KindBytes:   "bytes",
	KindRecord:  "record",
	KindTuple:   "tuple",
	KindList:    "list",
	KindMap:     "map",
	KindOption:  "option",
	KindVariant: "variant",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsPrimitive() bool {
	return k <= KindChar
}

// FixedSize returns the wire width in bytes for fixed-width leaves,
// and 0 for everything whose width depends on the value.
func (k Kind) FixedSize() int {
	switch k {
	case KindBool, KindU8, KindS8:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32, KindF32, KindChar:
		return 4
	case KindU64, KindS64, KindF64:
		return 8
	default:
		return 0
	}
}
