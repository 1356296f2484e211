package schema

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/Dentosal/pinecone"
	"github.com/Dentosal/pinecone/codec"
	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/types"
	"github.com/Dentosal/pinecone/internal/varint"
)

// Encode serializes a generic value against the schema into a fresh
// buffer.
func (s *Schema) Encode(v any) ([]byte, error) {
	sink := codec.NewBufferSink()
	if err := s.EncodeTo(v, sink); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// EncodeInto serializes into a caller-owned buffer, returning the
// written prefix. Encoding fails with a buffer-full error when buf is
// too small.
func (s *Schema) EncodeInto(v any, buf []byte) ([]byte, error) {
	sink := codec.NewSliceSink(buf)
	if err := s.EncodeTo(v, sink); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// EncodeTo serializes into any sink.
func (s *Schema) EncodeTo(v any, sink pinecone.Sink) error {
	return encodeValue(s.root, v, sink, nil)
}

func putUvarint(sink pinecone.Sink, v uint) error {
	var buf [varint.MaxLen]byte
	return sink.Append(varint.Append(buf[:0], v))
}

func encodeValue(ct *types.CompiledType, v any, sink pinecone.Sink, path []string) error {
	switch ct.Kind {
	case types.KindBool:
		b, ok := v.(bool)
		if !ok {
			return typeErr(path, fmt.Sprintf("%T", v), "bool")
		}
		if b {
			return sink.AppendByte(1)
		}
		return sink.AppendByte(0)

	case types.KindU8:
		u, err := coerceUint(v, 8, path)
		if err != nil {
			return err
		}
		return sink.AppendByte(byte(u))

	case types.KindS8:
		n, err := coerceInt(v, 8, path)
		if err != nil {
			return err
		}
		return sink.AppendByte(byte(n))

	case types.KindU16:
		u, err := coerceUint(v, 16, path)
		if err != nil {
			return err
		}
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(u))
		return sink.Append(b[:])

	case types.KindS16:
		n, err := coerceInt(v, 16, path)
		if err != nil {
			return err
		}
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(n))
		return sink.Append(b[:])

	case types.KindU32:
		u, err := coerceUint(v, 32, path)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(u))
		return sink.Append(b[:])

	case types.KindS32:
		n, err := coerceInt(v, 32, path)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		return sink.Append(b[:])

	case types.KindU64:
		u, err := coerceUint(v, 64, path)
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], u)
		return sink.Append(b[:])

	case types.KindS64:
		n, err := coerceInt(v, 64, path)
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(n))
		return sink.Append(b[:])

	case types.KindF32:
		f, err := coerceFloat(v, path)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(f)))
		return sink.Append(b[:])

	case types.KindF64:
		f, err := coerceFloat(v, path)
		if err != nil {
			return err
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		return sink.Append(b[:])

	case types.KindUint:
		u, err := coerceUint(v, 64, path)
		if err != nil {
			return err
		}
		return putUvarint(sink, uint(u))

	case types.KindChar:
		cp, err := coerceChar(v, path)
		if err != nil {
			return err
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], cp)
		return sink.Append(b[:])

	case types.KindString:
		str, ok := v.(string)
		if !ok {
			return typeErr(path, fmt.Sprintf("%T", v), "string")
		}
		if err := putUvarint(sink, uint(len(str))); err != nil {
			return err
		}
		return sink.Append([]byte(str))

	case types.KindBytes:
		var b []byte
		switch d := v.(type) {
		case []byte:
			b = d
		case string:
			b = []byte(d)
		default:
			return typeErr(path, fmt.Sprintf("%T", v), "bytes")
		}
		if err := putUvarint(sink, uint(len(b))); err != nil {
			return err
		}
		return sink.Append(b)

	case types.KindList:
		rv := reflect.ValueOf(v)
		if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return typeErr(path, fmt.Sprintf("%T", v), "list")
		}
		n := rv.Len()
		if err := putUvarint(sink, uint(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := encodeValue(ct.Elem, rv.Index(i).Interface(), sink, path); err != nil {
				return err
			}
		}
		return nil

	case types.KindTuple:
		rv := reflect.ValueOf(v)
		if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return typeErr(path, fmt.Sprintf("%T", v), "array")
		}
		if rv.Len() != ct.Len {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				Detail("array wants %d elements, got %d", ct.Len, rv.Len()).
				Build()
		}
		for i := 0; i < ct.Len; i++ {
			if err := encodeValue(ct.Elem, rv.Index(i).Interface(), sink, path); err != nil {
				return err
			}
		}
		return nil

	case types.KindMap:
		rv := reflect.ValueOf(v)
		if v == nil || rv.Kind() != reflect.Map {
			return typeErr(path, fmt.Sprintf("%T", v), "map")
		}
		if err := putUvarint(sink, uint(rv.Len())); err != nil {
			return err
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := encodeValue(ct.Key, iter.Key().Interface(), sink, path); err != nil {
				return err
			}
			if err := encodeValue(ct.Elem, iter.Value().Interface(), sink, path); err != nil {
				return err
			}
		}
		return nil

	case types.KindRecord:
		if len(ct.Fields) == 0 {
			// Unit value; nil and an empty map are both accepted.
			return nil
		}
		m, err := asStringMap(v, path)
		if err != nil {
			return err
		}
		for _, f := range ct.Fields {
			fv, ok := m[f.Name]
			if !ok {
				return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(append(path, f.Name)...).
					Detail("missing record field").
					Build()
			}
			if err := encodeValue(f.Type, fv, sink, append(path, f.Name)); err != nil {
				return err
			}
		}
		return nil

	case types.KindOption:
		if v == nil {
			return sink.AppendByte(0)
		}
		if err := sink.AppendByte(1); err != nil {
			return err
		}
		return encodeValue(ct.Elem, v, sink, path)

	case types.KindVariant:
		return encodeVariant(ct, v, sink, path)
	}

	return errors.Unsupported(path, ct.Kind.String(), "no encoding for shape kind")
}

// encodeVariant accepts either {"case": payload} or, for unit
// payloads, the bare case name.
func encodeVariant(ct *types.CompiledType, v any, sink pinecone.Sink, path []string) error {
	var name string
	var payload any

	switch d := v.(type) {
	case string:
		name, payload = d, nil
	default:
		m, err := asStringMap(v, path)
		if err != nil {
			return err
		}
		if len(m) != 1 {
			return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
				Path(path...).
				Detail("variant value must have exactly one case, got %d", len(m)).
				Build()
		}
		for k, p := range m {
			name, payload = k, p
		}
	}

	for _, cs := range ct.Cases {
		if cs.Name != name {
			continue
		}
		if err := putUvarint(sink, uint(cs.Index)); err != nil {
			return err
		}
		if payload == nil && cs.Type.Kind == types.KindRecord && len(cs.Type.Fields) == 0 {
			return nil
		}
		return encodeValue(cs.Type, payload, sink, append(path, name))
	}
	return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
		Path(path...).
		Detail("unknown variant case %q", name).
		Build()
}

func asStringMap(v any, path []string) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, typeErr(path, fmt.Sprintf("%T", k), "string key")
			}
			out[ks] = val
		}
		return out, nil
	default:
		return nil, typeErr(path, fmt.Sprintf("%T", v), "record")
	}
}

func coerceChar(v any, path []string) (uint32, error) {
	switch c := v.(type) {
	case string:
		r, size := utf8.DecodeRuneInString(c)
		if r == utf8.RuneError || size != len(c) {
			return 0, typeErr(path, "string", "single code point")
		}
		return uint32(r), nil
	default:
		u, err := coerceUint(v, 32, path)
		if err != nil {
			return 0, err
		}
		if !utf8.ValidRune(rune(u)) {
			return 0, errors.New(errors.PhaseEncode, errors.KindInvalidChar).
				Path(path...).
				Detail("code point %#x is not encodable", u).
				Build()
		}
		return uint32(u), nil
	}
}
