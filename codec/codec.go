package codec

import (
	"github.com/Dentosal/pinecone/errors"
)

// defaultCompiler backs the package-level entry points so every caller
// shares one compiled-shape cache.
var defaultCompiler = NewCompiler()

// Marshal encodes v into a freshly allocated buffer.
//
//	data, err := codec.Marshal(true)        // data = []byte{0x01}
//	data, err := codec.Marshal("Hi!")       // data = []byte{0x03, 'H', 'i', '!'}
func Marshal(v any) ([]byte, error) {
	s := NewBufferSink()
	if err := NewEncoderWithCompiler(defaultCompiler).Encode(v, s); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// MarshalInto encodes v into the caller-supplied buffer and returns
// the used prefix. No allocation happens on this path; if buf is too
// small the encode fails with a buffer-full error and the contents of
// buf past the failure point are undefined.
func MarshalInto(v any, buf []byte) ([]byte, error) {
	s := NewSliceSink(buf)
	if err := NewEncoderWithCompiler(defaultCompiler).Encode(v, s); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// Unmarshal decodes data into v, which must be a non-nil pointer. The
// entire input must be consumed: leftover bytes after the value fail
// with a trailing-bytes error even though the value itself decoded.
//
// Unmarshal trusts that data was produced by encoding a value of v's
// shape. Decoding into the wrong shape is not detected and yields
// garbage or one of the enumerated decode errors; see the package
// documentation.
func Unmarshal(data []byte, v any) error {
	rest, err := NewDecoderWithCompiler(defaultCompiler).Decode(data, v)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return errors.TrailingBytes(len(rest))
	}
	return nil
}

// UnmarshalRest decodes one value from the front of data into v and
// returns the unconsumed remainder, for callers that pack multiple
// values back to back. The same trust-on-decode contract as Unmarshal
// applies; no trailing-bytes check is performed.
func UnmarshalRest(data []byte, v any) ([]byte, error) {
	return NewDecoderWithCompiler(defaultCompiler).Decode(data, v)
}
