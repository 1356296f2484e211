package types

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBool, "bool"},
		{KindUint, "uint"},
		{KindChar, "char"},
		{KindBytes, "bytes"},
		{KindVariant, "variant"},
		{Kind(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_IsPrimitive(t *testing.T) {
	for k := KindBool; k <= KindChar; k++ {
		if !k.IsPrimitive() {
			t.Errorf("%v should be primitive", k)
		}
	}
	for _, k := range []Kind{KindString, KindBytes, KindRecord, KindTuple, KindList, KindMap, KindOption, KindVariant} {
		if k.IsPrimitive() {
			t.Errorf("%v should not be primitive", k)
		}
	}
}

func TestKind_FixedSize(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindBool, 1},
		{KindU8, 1},
		{KindS8, 1},
		{KindU16, 2},
		{KindS16, 2},
		{KindU32, 4},
		{KindS32, 4},
		{KindF32, 4},
		{KindChar, 4},
		{KindU64, 8},
		{KindS64, 8},
		{KindF64, 8},
		{KindUint, 0},
		{KindString, 0},
		{KindRecord, 0},
	}
	for _, tt := range tests {
		if got := tt.kind.FixedSize(); got != tt.want {
			t.Errorf("%v.FixedSize() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
