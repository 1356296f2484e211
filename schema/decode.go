package schema

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/types"
	"github.com/Dentosal/pinecone/internal/varint"
)

const (
	maxPrealloc     = 4096
	maxDiscriminant = math.MaxUint32
)

// Decode deserializes one value against the schema. Unconsumed bytes
// after the value are an error.
//
// The input is trusted: bytes produced with a different schema decode
// to garbage or an error, never a panic.
func (s *Schema) Decode(data []byte) (any, error) {
	v, rest, err := s.DecodeRest(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.TrailingBytes(len(rest))
	}
	return v, nil
}

// DecodeRest deserializes one value and returns the unconsumed
// remainder, for callers framing several values in one buffer.
func (s *Schema) DecodeRest(data []byte) (any, []byte, error) {
	r := &reader{data: data}
	v, err := decodeValue(s.root, r, nil)
	if err != nil {
		return nil, nil, err
	}
	return v, r.rest(), nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) rest() []byte {
	return r.data[r.off:]
}

func (r *reader) takeByte(path []string) (byte, error) {
	if r.off >= len(r.data) {
		return 0, errors.UnexpectedEnd(path, 1, 0)
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) take(n int, path []string) ([]byte, error) {
	if rem := len(r.data) - r.off; rem < n {
		return nil, errors.UnexpectedEnd(path, n, rem)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) uvarint(path []string) (uint, error) {
	v, n, err := varint.Uvarint(r.data[r.off:])
	if err != nil {
		if err == varint.ErrOverflow {
			return 0, errors.VarintOverflow(path)
		}
		return 0, errors.UnexpectedEnd(path, 1, 0)
	}
	r.off += n
	return v, nil
}

func (r *reader) takeLength(path []string) (int, error) {
	v, err := r.uvarint(path)
	if err != nil {
		return 0, err
	}
	if uint64(v) > math.MaxInt {
		return 0, errors.UnexpectedEnd(path, math.MaxInt, len(r.data)-r.off)
	}
	return int(v), nil
}

// mapKey renders a decoded map key as a string, so decoded maps are
// always map[string]any and marshal directly to JSON or YAML. The
// encode side parses numeric keys back from their string form.
func mapKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func decodeValue(ct *types.CompiledType, r *reader, path []string) (any, error) {
	switch ct.Kind {
	case types.KindBool:
		b, err := r.takeByte(path)
		if err != nil {
			return nil, err
		}
		if b > 1 {
			return nil, errors.InvalidBool(path, b)
		}
		return b == 1, nil

	case types.KindU8:
		b, err := r.takeByte(path)
		return b, err

	case types.KindS8:
		b, err := r.takeByte(path)
		return int8(b), err

	case types.KindU16:
		b, err := r.take(2, path)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint16(b), nil

	case types.KindS16:
		b, err := r.take(2, path)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil

	case types.KindU32:
		b, err := r.take(4, path)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint32(b), nil

	case types.KindS32:
		b, err := r.take(4, path)
		if err != nil {
			return nil, err
		}
		return int32(binary.LittleEndian.Uint32(b)), nil

	case types.KindU64:
		b, err := r.take(8, path)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.Uint64(b), nil

	case types.KindS64:
		b, err := r.take(8, path)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil

	case types.KindF32:
		b, err := r.take(4, path)
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil

	case types.KindF64:
		b, err := r.take(8, path)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil

	case types.KindUint:
		v, err := r.uvarint(path)
		return uint64(v), err

	case types.KindChar:
		b, err := r.take(4, path)
		if err != nil {
			return nil, err
		}
		cp := binary.LittleEndian.Uint32(b)
		if cp > math.MaxInt32 || !utf8.ValidRune(rune(cp)) {
			return nil, errors.InvalidChar(path, cp)
		}
		return string(rune(cp)), nil

	case types.KindString:
		n, err := r.takeLength(path)
		if err != nil {
			return nil, err
		}
		b, err := r.take(n, path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errors.InvalidUTF8(path, b)
		}
		return string(b), nil

	case types.KindBytes:
		n, err := r.takeLength(path)
		if err != nil {
			return nil, err
		}
		b, err := r.take(n, path)
		if err != nil {
			return nil, err
		}
		out := make([]byte, n)
		copy(out, b)
		return out, nil

	case types.KindList:
		n, err := r.takeLength(path)
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			elem, err := decodeValue(ct.Elem, r, path)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil

	case types.KindTuple:
		out := make([]any, 0, min(ct.Len, maxPrealloc))
		for i := 0; i < ct.Len; i++ {
			elem, err := decodeValue(ct.Elem, r, path)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil

	case types.KindMap:
		n, err := r.takeLength(path)
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, min(n, maxPrealloc))
		for i := 0; i < n; i++ {
			k, err := decodeValue(ct.Key, r, path)
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(ct.Elem, r, path)
			if err != nil {
				return nil, err
			}
			out[mapKey(k)] = v
		}
		return out, nil

	case types.KindRecord:
		out := make(map[string]any, len(ct.Fields))
		for _, f := range ct.Fields {
			v, err := decodeValue(f.Type, r, append(path, f.Name))
			if err != nil {
				return nil, err
			}
			out[f.Name] = v
		}
		return out, nil

	case types.KindOption:
		tag, err := r.takeByte(path)
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return nil, nil
		case 1:
			return decodeValue(ct.Elem, r, path)
		default:
			return nil, errors.InvalidOption(path, tag)
		}

	case types.KindVariant:
		disc, err := r.uvarint(path)
		if err != nil {
			return nil, err
		}
		if uint64(disc) > maxDiscriminant {
			return nil, errors.InvalidDiscriminant(path, uint64(disc))
		}
		if disc >= uint(len(ct.Cases)) {
			return nil, errors.UnknownVariant(path, uint64(disc), len(ct.Cases))
		}
		cs := ct.Cases[disc]
		payload, err := decodeValue(cs.Type, r, append(path, cs.Name))
		if err != nil {
			return nil, err
		}
		return map[string]any{cs.Name: payload}, nil
	}

	return nil, errors.Unsupported(path, ct.Kind.String(), "no decoding for shape kind")
}
