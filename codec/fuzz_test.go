package codec

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

// FuzzUnmarshal feeds arbitrary bytes to the decoder across a set of
// shapes. The decoder trusts its input, so decoded values are
// unconstrained, but it must never panic and must report errors
// through the error taxonomy.
func FuzzUnmarshal(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x01, 0xB7, 0x26})
	f.Add([]byte{0x02, 'h', 'i', 0x01, 0xB7, 0x26, 0x01})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	f.Add([]byte{0x03, 0x00, 0x01, 'a', 0x02, 'b', 'c'})

	targets := []func() any{
		func() any { return new(bool) },
		func() any { return new(uint) },
		func() any { return new(string) },
		func() any { return new([]byte) },
		func() any { return new([]string) },
		func() any { return new(map[uint8]uint32) },
		func() any { return new(*uint16) },
		func() any { return new(example) },
		func() any { return new(dataEnum) },
		func() any { return new(nested) },
		func() any { return new(*listNode) },
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, mk := range targets {
			v := mk()
			if err := Unmarshal(data, v); err != nil {
				continue
			}
			// Whatever decoded must encode again without error.
			if _, err := Marshal(reflect.ValueOf(v).Elem().Interface()); err != nil {
				t.Errorf("re-encode of %T failed: %v", v, err)
			}
		}
	})
}

// FuzzRoundTrip checks the encode/decode law on generated values for
// a shape that touches varints, strings and options.
func FuzzRoundTrip(f *testing.F) {
	f.Add("", uint64(0), false)
	f.Add("hi", uint64(4919), true)
	f.Add("héllo wörld", uint64(1<<40), false)

	type sample struct {
		S string
		N uint64
		P *bool
	}

	f.Fuzz(func(t *testing.T, s string, n uint64, hasP bool) {
		if !utf8.ValidString(s) {
			// The decoder rejects what the fuzzer may generate here.
			t.Skip()
		}
		in := sample{S: s, N: n}
		if hasP {
			v := true
			in.P = &v
		}
		data, err := Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		var out sample
		if err := Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal(% X): %v", data, err)
		}
		if out.S != in.S || out.N != in.N || (out.P == nil) != (in.P == nil) {
			t.Errorf("got %+v, want %+v", out, in)
		}
	})
}
