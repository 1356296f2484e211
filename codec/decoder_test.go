package codec

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"

	perrors "github.com/Dentosal/pinecone/errors"
)

func mustUnmarshal[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := Unmarshal(data, &v); err != nil {
		t.Fatalf("Unmarshal(% X): %v", data, err)
	}
	return v
}

func wantKind(t *testing.T, err error, kind perrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var e *perrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not a *errors.Error", err)
	}
	if e.Kind != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", e.Kind, kind, err)
	}
}

func TestDecode_Unsigned(t *testing.T) {
	if got := mustUnmarshal[uint8](t, []byte{0x05}); got != 5 {
		t.Errorf("u8 = %d, want 5", got)
	}
	if got := mustUnmarshal[uint16](t, []byte{0xC7, 0xA5}); got != 0xA5C7 {
		t.Errorf("u16 = %#x, want 0xA5C7", got)
	}
	if got := mustUnmarshal[uint32](t, []byte{0x12, 0x34, 0xAB, 0xCD}); got != 0xCDAB3412 {
		t.Errorf("u32 = %#x", got)
	}
	if got := mustUnmarshal[uint64](t, []byte{0xEF, 0xCD, 0xAB, 0x90, 0x78, 0x56, 0x34, 0x12}); got != 0x1234_5678_90AB_CDEF {
		t.Errorf("u64 = %#x", got)
	}
}

func TestDecode_Struct(t *testing.T) {
	data := []byte{
		0xCD, 0xAB, 0xFE, 0xBA, 0xDC, 0xCD, 0xAB, 0x21, 0x43, 0x34, 0x12, 0xAC, 0xAC, 0xAC, 0xAC,
	}
	got := mustUnmarshal[basicU8S](t, data)
	want := basicU8S{
		St: 0xABCD,
		Ei: 0xFE,
		Sf: 0x1234_4321_ABCD_DCBA,
		Tt: 0xACAC_ACAC,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDecode_ByteSlice(t *testing.T) {
	got := mustUnmarshal[[]byte](t, []byte{0x08, 1, 2, 3, 4, 5, 6, 7, 8})
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("got % X", got)
	}

	// The decoded slice must not alias the input buffer.
	input := []byte{0x02, 0xAA, 0xBB}
	got = mustUnmarshal[[]byte](t, input)
	input[1] = 0x00
	if got[0] != 0xAA {
		t.Error("decoded bytes alias the input buffer")
	}
}

func TestDecode_String(t *testing.T) {
	data := append([]byte{0x10}, "hello, pinecone!"...)
	if got := mustUnmarshal[string](t, data); got != "hello, pinecone!" {
		t.Errorf("got %q", got)
	}
}

func TestDecode_Enums(t *testing.T) {
	got := mustUnmarshal[basicEnum](t, []byte{0x01})
	if got.Bim == nil || got.Bib != nil || got.Bap != nil {
		t.Errorf("got %+v, want Bim set", got)
	}

	de := mustUnmarshal[dataEnum](t, []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	if de.Bim == nil || *de.Bim != math.MaxUint64 {
		t.Errorf("got %+v, want Bim = MaxUint64", de)
	}

	de = mustUnmarshal[dataEnum](t, []byte{0x05, 0x69, 0x69, 0x07})
	if de.Sho == nil || *de.Sho != (shoPayload{A: 0x6969, B: 0x07}) {
		t.Errorf("got %+v", de)
	}
}

func TestDecode_EnumClearsPreviousCase(t *testing.T) {
	v := uint8(9)
	target := dataEnum{Bap: &v}
	if err := Unmarshal([]byte{0x00, 0x34, 0x12}, &target); err != nil {
		t.Fatal(err)
	}
	if target.Bap != nil {
		t.Error("previously set case was not cleared")
	}
	if target.Bib == nil || *target.Bib != 0x1234 {
		t.Errorf("got %+v, want Bib = 0x1234", target)
	}
}

func TestDecode_Map(t *testing.T) {
	got := mustUnmarshal[map[uint8]uint8](t, []byte{0x00})
	if len(got) != 0 {
		t.Errorf("empty map = %v", got)
	}

	got = mustUnmarshal[map[uint8]uint8](t, []byte{0x03, 1, 2, 3, 4, 5, 6})
	want := map[uint8]uint8{1: 2, 3: 4, 5: 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecode_Option(t *testing.T) {
	if got := mustUnmarshal[*uint16](t, []byte{0x00}); got != nil {
		t.Errorf("absent option = %v, want nil", got)
	}
	got := mustUnmarshal[*uint16](t, []byte{0x01, 0x34, 0x12})
	if got == nil || *got != 0x1234 {
		t.Errorf("present option = %v", got)
	}

	// Decoding an absent option must clear an already populated target.
	v := uint16(7)
	p := &v
	if err := Unmarshal([]byte{0x00}, &p); err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Error("absent option did not clear the target")
	}
}

func TestDecode_Char(t *testing.T) {
	if got := mustUnmarshal[Char](t, []byte{0x61, 0x00, 0x00, 0x00}); got != 'a' {
		t.Errorf("got %q", got)
	}
	if got := mustUnmarshal[Char](t, []byte{0xAC, 0x20, 0x00, 0x00}); got != '€' {
		t.Errorf("got %q", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		target any
		kind   perrors.Kind
	}{
		{"bool out of range", []byte{0x02}, new(bool), perrors.KindInvalidBool},
		{"option tag out of range", []byte{0x02}, new(*uint8), perrors.KindInvalidOption},
		{"char surrogate", []byte{0x00, 0xD8, 0x00, 0x00}, new(Char), perrors.KindInvalidChar},
		{"char beyond unicode", []byte{0x00, 0x00, 0x11, 0x00}, new(Char), perrors.KindInvalidChar},
		{"string invalid utf-8", []byte{0x01, 0xFF}, new(string), perrors.KindInvalidUTF8},
		{"string truncated", []byte{0x05, 'h', 'i'}, new(string), perrors.KindUnexpectedEnd},
		{"u32 truncated", []byte{0x01, 0x02, 0x03}, new(uint32), perrors.KindUnexpectedEnd},
		{"empty input", []byte{}, new(uint8), perrors.KindUnexpectedEnd},
		{"varint unterminated", []byte{0xFF, 0xFF}, new(uint), perrors.KindUnexpectedEnd},
		{"undeclared variant case", []byte{0x06}, new(dataEnum), perrors.KindInvalidVariant},
		{"discriminant too large", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, new(dataEnum), perrors.KindInvalidEnum},
		// 0xC0000000: in range for a u32 discriminant but far past the
		// declared cases. Must stay an error on 32-bit builds too,
		// where the value does not fit a signed int.
		{"undeclared case high discriminant", []byte{0x80, 0x80, 0x80, 0x80, 0x0C}, new(dataEnum), perrors.KindInvalidVariant},
		{"trailing bytes", []byte{0x01, 0x00}, new(bool), perrors.KindTrailingBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantKind(t, Unmarshal(tt.data, tt.target), tt.kind)
		})
	}
}

func TestDecode_VarintOverflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 9)
	data = append(data, 0x7F)
	wantKind(t, Unmarshal(data, new(uint)), perrors.KindVarintOverflow)
}

func TestDecode_NonCanonicalVarint(t *testing.T) {
	// Redundant zero continuation groups decode to the same value.
	if got := mustUnmarshal[uint](t, []byte{0x80, 0x80, 0x00}); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := mustUnmarshal[uint](t, []byte{0xB7, 0xA6, 0x00}); got != 4919 {
		t.Errorf("got %d, want 4919", got)
	}
}

func TestDecode_TargetValidation(t *testing.T) {
	var v uint8
	if _, err := UnmarshalRest([]byte{0x01}, v); err == nil {
		t.Error("non-pointer target should be rejected")
	}
	var p *uint8
	if _, err := UnmarshalRest([]byte{0x01}, p); err == nil {
		t.Error("nil pointer target should be rejected")
	}
}

func TestUnmarshalRest(t *testing.T) {
	var v uint16
	rest, err := UnmarshalRest([]byte{0x34, 0x12, 0xAA, 0xBB}, &v)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Errorf("v = %#x", v)
	}
	if !bytes.Equal(rest, []byte{0xAA, 0xBB}) {
		t.Errorf("rest = % X", rest)
	}
}

func TestDecode_ListGrowsBeyondPrealloc(t *testing.T) {
	n := maxPrealloc + 100
	vals := make([]uint16, n)
	for i := range vals {
		vals[i] = uint16(i)
	}
	data := mustMarshal(t, vals)
	got := mustUnmarshal[[]uint16](t, data)
	if !reflect.DeepEqual(got, vals) {
		t.Errorf("round trip failed for %d-element slice", n)
	}
}

func TestDecode_HugeLengthPrefix(t *testing.T) {
	// A claimed length far beyond the input must fail cleanly without
	// allocating the claimed amount up front.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F, 0x01, 0x02}
	wantKind(t, Unmarshal(data, new([]uint32)), perrors.KindUnexpectedEnd)
}
