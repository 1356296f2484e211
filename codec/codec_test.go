package codec

import (
	"bytes"
	"testing"
)

type example struct {
	Foo string
	Bar *uint
	Zot bool
}

func TestMarshal_Example(t *testing.T) {
	bar := uint(4919)
	got := mustMarshal(t, example{Foo: "hi", Bar: &bar, Zot: true})
	want := []byte{0x02, 'h', 'i', 0x01, 0xB7, 0x26, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}

	var back example
	if err := Unmarshal(got, &back); err != nil {
		t.Fatal(err)
	}
	if back.Foo != "hi" || back.Bar == nil || *back.Bar != 4919 || !back.Zot {
		t.Errorf("got %+v", back)
	}
}

func TestMarshal_NilValue(t *testing.T) {
	if _, err := Marshal(nil); err == nil {
		t.Error("Marshal(nil) should fail")
	}
}

func TestMarshal_SharedCompiler(t *testing.T) {
	// Package-level Marshal and Unmarshal share one compiler; mixing
	// them with per-instance encoders must agree on the bytes.
	enc := NewEncoder()
	sink := NewBufferSink()
	if err := enc.Encode(basicU8S{St: 1, Ei: 2, Sf: 3, Tt: 4}, sink); err != nil {
		t.Fatal(err)
	}
	pkg := mustMarshal(t, basicU8S{St: 1, Ei: 2, Sf: 3, Tt: 4})
	if !bytes.Equal(sink.Bytes(), pkg) {
		t.Errorf("encoder bytes % X differ from Marshal bytes % X", sink.Bytes(), pkg)
	}
}

func TestEncode_SinkReuse(t *testing.T) {
	enc := NewEncoder()
	sink := NewBufferSink()

	if err := enc.Encode(uint8(1), sink); err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(uint16(0x0302), sink); err != nil {
		t.Fatal(err)
	}
	// Concatenated messages decode back in sequence.
	var a uint8
	rest, err := UnmarshalRest(sink.Bytes(), &a)
	if err != nil {
		t.Fatal(err)
	}
	var b uint16
	rest, err = UnmarshalRest(rest, &b)
	if err != nil {
		t.Fatal(err)
	}
	if a != 1 || b != 0x0302 || len(rest) != 0 {
		t.Errorf("a=%d b=%#x rest=% X", a, b, rest)
	}
}

func TestMarshalInto_Exhaustion(t *testing.T) {
	v := refStruct{Bytes: make([]byte, 10), StrS: "x"}
	full, err := Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	// A buffer one byte short must fail; the exact size must succeed.
	if _, err := MarshalInto(v, make([]byte, len(full)-1)); err == nil {
		t.Error("undersized buffer should fail")
	}
	out, err := MarshalInto(v, make([]byte, len(full)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, full) {
		t.Errorf("got % X, want % X", out, full)
	}
}
