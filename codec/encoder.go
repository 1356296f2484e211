package codec

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/varint"
)

// Encoder converts structured values into their canonical byte
// encoding in a single depth-first traversal. The encoder itself
// introduces no failure modes: an encode fails only when the sink runs
// out of room or the value misuses a variant.
type Encoder struct {
	compiler *Compiler
}

func NewEncoder() *Encoder {
	return &Encoder{compiler: NewCompiler()}
}

// NewEncoderWithCompiler shares a compiled-shape cache with other
// encoders and decoders.
func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// Encode writes the canonical encoding of v to s.
func (e *Encoder) Encode(v any, s Sink) error {
	if v == nil {
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("cannot derive a shape for a nil value").
			Build()
	}

	rv := reflect.ValueOf(v)
	ct, err := e.compiler.Compile(rv.Type())
	if err != nil {
		return err
	}
	return e.encodeValue(ct, rv, s, nil)
}

func (e *Encoder) encodeValue(ct *CompiledType, rv reflect.Value, s Sink, path []string) error {
	switch ct.Kind {
	case KindBool:
		if rv.Bool() {
			return s.AppendByte(1)
		}
		return s.AppendByte(0)

	case KindU8:
		return s.AppendByte(byte(rv.Uint()))

	case KindS8:
		return s.AppendByte(byte(rv.Int()))

	case KindU16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(rv.Uint()))
		return s.Append(b[:])

	case KindS16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(rv.Int()))
		return s.Append(b[:])

	case KindU32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(rv.Uint()))
		return s.Append(b[:])

	case KindS32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(rv.Int()))
		return s.Append(b[:])

	case KindU64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], rv.Uint())
		return s.Append(b[:])

	case KindS64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(rv.Int()))
		return s.Append(b[:])

	case KindF32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(rv.Float())))
		return s.Append(b[:])

	case KindF64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(rv.Float()))
		return s.Append(b[:])

	case KindUint:
		return appendUvarint(s, uint(rv.Uint()))

	case KindChar:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(rv.Int()))
		return s.Append(b[:])

	case KindString:
		str := rv.String()
		if err := appendUvarint(s, uint(len(str))); err != nil {
			return err
		}
		return s.Append([]byte(str))

	case KindBytes:
		b := rv.Bytes()
		if err := appendUvarint(s, uint(len(b))); err != nil {
			return err
		}
		return s.Append(b)

	case KindList:
		n := rv.Len()
		if err := appendUvarint(s, uint(n)); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := e.encodeValue(ct.Elem, rv.Index(i), s, path); err != nil {
				return err
			}
		}
		return nil

	case KindMap:
		// Pairs go out in map iteration order; the format imposes no
		// ordering, so two encodings of the same map may differ.
		if err := appendUvarint(s, uint(rv.Len())); err != nil {
			return err
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := e.encodeValue(ct.Key, iter.Key(), s, path); err != nil {
				return err
			}
			if err := e.encodeValue(ct.Elem, iter.Value(), s, path); err != nil {
				return err
			}
		}
		return nil

	case KindRecord:
		for _, f := range ct.Fields {
			if err := e.encodeValue(f.Type, rv.Field(f.Index), s, append(path, f.Name)); err != nil {
				return err
			}
		}
		return nil

	case KindTuple:
		for i := 0; i < ct.Len; i++ {
			if err := e.encodeValue(ct.Elem, rv.Index(i), s, path); err != nil {
				return err
			}
		}
		return nil

	case KindOption:
		if rv.IsNil() {
			return s.AppendByte(0)
		}
		if err := s.AppendByte(1); err != nil {
			return err
		}
		return e.encodeValue(ct.Elem, rv.Elem(), s, append(path, "[some]"))

	case KindVariant:
		active := -1
		for i, cs := range ct.Cases {
			if !rv.Field(cs.Index).IsNil() {
				if active >= 0 {
					return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
						Path(path...).
						GoType(ct.GoType.String()).
						Detail("cases %s and %s are both set", ct.Cases[active].Name, cs.Name).
						Build()
				}
				active = i
			}
		}
		if active < 0 {
			return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
				Path(path...).
				GoType(ct.GoType.String()).
				Detail("no case is set").
				Build()
		}
		if err := appendUvarint(s, uint(active)); err != nil {
			return err
		}
		cs := ct.Cases[active]
		return e.encodeValue(cs.Type, rv.Field(cs.Index).Elem(), s, append(path, cs.Name))

	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("unhandled shape %v", ct.Kind).
			Build()
	}
}

func appendUvarint(s Sink, v uint) error {
	var buf [varint.MaxLen]byte
	return s.Append(varint.Append(buf[:0], v))
}
