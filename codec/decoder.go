package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/Dentosal/pinecone/errors"
)

// maxPrealloc caps speculative allocation for decoded sequences and
// maps. Counts are attacker-controlled on hostile input; growth past
// this cap is driven by bytes actually present.
const maxPrealloc = 4096

// maxDiscriminant is the modeled upper bound for variant
// discriminants. It is a wire-compatibility constant, independent of
// how many cases a particular variant declares.
const maxDiscriminant = math.MaxUint32

// Decoder reconstructs structured values from an immutable byte slice
// in a single forward pass, trusting the caller's requested shape. See
// the package documentation for the trust-on-decode contract.
type Decoder struct {
	compiler *Compiler
}

func NewDecoder() *Decoder {
	return &Decoder{compiler: NewCompiler()}
}

// NewDecoderWithCompiler shares a compiled-shape cache with other
// encoders and decoders.
func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

// Decode reads one value of v's shape from the front of data and
// returns the unconsumed remainder. v must be a non-nil pointer.
func (d *Decoder) Decode(data []byte, v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(v).String()).
			Detail("decode target must be a non-nil pointer").
			Build()
	}

	ct, err := d.compiler.Compile(rv.Type().Elem())
	if err != nil {
		return nil, err
	}

	cur := &cursor{data: data}
	if err := d.decodeValue(ct, rv.Elem(), cur, nil); err != nil {
		return nil, err
	}
	return cur.rest(), nil
}

func (d *Decoder) decodeValue(ct *CompiledType, rv reflect.Value, cur *cursor, path []string) error {
	switch ct.Kind {
	case KindBool:
		b, err := cur.takeByte(path)
		if err != nil {
			return err
		}
		if b > 1 {
			return errors.InvalidBool(path, b)
		}
		rv.SetBool(b == 1)
		return nil

	case KindU8:
		b, err := cur.takeByte(path)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(b))
		return nil

	case KindS8:
		b, err := cur.takeByte(path)
		if err != nil {
			return err
		}
		rv.SetInt(int64(int8(b)))
		return nil

	case KindU16:
		b, err := cur.take(2, path)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(binary.LittleEndian.Uint16(b)))
		return nil

	case KindS16:
		b, err := cur.take(2, path)
		if err != nil {
			return err
		}
		rv.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
		return nil

	case KindU32:
		b, err := cur.take(4, path)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(binary.LittleEndian.Uint32(b)))
		return nil

	case KindS32:
		b, err := cur.take(4, path)
		if err != nil {
			return err
		}
		rv.SetInt(int64(int32(binary.LittleEndian.Uint32(b))))
		return nil

	case KindU64:
		b, err := cur.take(8, path)
		if err != nil {
			return err
		}
		rv.SetUint(binary.LittleEndian.Uint64(b))
		return nil

	case KindS64:
		b, err := cur.take(8, path)
		if err != nil {
			return err
		}
		rv.SetInt(int64(binary.LittleEndian.Uint64(b)))
		return nil

	case KindF32:
		b, err := cur.take(4, path)
		if err != nil {
			return err
		}
		rv.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
		return nil

	case KindF64:
		b, err := cur.take(8, path)
		if err != nil {
			return err
		}
		rv.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		return nil

	case KindUint:
		v, err := cur.uvarint(path)
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil

	case KindChar:
		b, err := cur.take(4, path)
		if err != nil {
			return err
		}
		cp := binary.LittleEndian.Uint32(b)
		r := rune(int32(cp))
		if !utf8.ValidRune(r) {
			return errors.InvalidChar(path, cp)
		}
		rv.SetInt(int64(r))
		return nil

	case KindString:
		n, err := cur.takeLength(path)
		if err != nil {
			return err
		}
		b, err := cur.take(n, path)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return errors.InvalidUTF8(path, b)
		}
		rv.SetString(string(b))
		return nil

	case KindBytes:
		n, err := cur.takeLength(path)
		if err != nil {
			return err
		}
		b, err := cur.take(n, path)
		if err != nil {
			return err
		}
		// The cursor hands out views of the input; the decoded value
		// must not alias caller memory.
		rv.SetBytes(bytes.Clone(b))
		return nil

	case KindList:
		n, err := cur.takeLength(path)
		if err != nil {
			return err
		}
		if n <= maxPrealloc {
			lst := reflect.MakeSlice(ct.GoType, n, n)
			for i := 0; i < n; i++ {
				if err := d.decodeValue(ct.Elem, lst.Index(i), cur, path); err != nil {
					return err
				}
			}
			rv.Set(lst)
			return nil
		}
		lst := reflect.MakeSlice(ct.GoType, 0, maxPrealloc)
		elem := reflect.New(ct.Elem.GoType).Elem()
		for i := 0; i < n; i++ {
			elem.SetZero()
			if err := d.decodeValue(ct.Elem, elem, cur, path); err != nil {
				return err
			}
			lst = reflect.Append(lst, elem)
		}
		rv.Set(lst)
		return nil

	case KindMap:
		n, err := cur.takeLength(path)
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(ct.GoType, min(n, maxPrealloc))
		key := reflect.New(ct.Key.GoType).Elem()
		val := reflect.New(ct.Elem.GoType).Elem()
		for i := 0; i < n; i++ {
			key.SetZero()
			val.SetZero()
			if err := d.decodeValue(ct.Key, key, cur, append(path, "[key]")); err != nil {
				return err
			}
			if err := d.decodeValue(ct.Elem, val, cur, append(path, "[value]")); err != nil {
				return err
			}
			m.SetMapIndex(key, val)
		}
		rv.Set(m)
		return nil

	case KindRecord:
		for _, f := range ct.Fields {
			if err := d.decodeValue(f.Type, rv.Field(f.Index), cur, append(path, f.Name)); err != nil {
				return err
			}
		}
		return nil

	case KindTuple:
		for i := 0; i < ct.Len; i++ {
			if err := d.decodeValue(ct.Elem, rv.Index(i), cur, path); err != nil {
				return err
			}
		}
		return nil

	case KindOption:
		tag, err := cur.takeByte(path)
		if err != nil {
			return err
		}
		switch tag {
		case 0:
			rv.SetZero()
			return nil
		case 1:
			p := reflect.New(ct.Elem.GoType)
			if err := d.decodeValue(ct.Elem, p.Elem(), cur, append(path, "[some]")); err != nil {
				return err
			}
			rv.Set(p)
			return nil
		default:
			return errors.InvalidOption(path, tag)
		}

	case KindVariant:
		disc, err := cur.uvarint(path)
		if err != nil {
			return err
		}
		if uint64(disc) > maxDiscriminant {
			return errors.InvalidDiscriminant(path, uint64(disc))
		}
		// Unsigned compare: on 32-bit platforms a large disc would
		// wrap negative through int and slip past the bound.
		if disc >= uint(len(ct.Cases)) {
			return errors.UnknownVariant(path, uint64(disc), len(ct.Cases))
		}
		for _, cs := range ct.Cases {
			rv.Field(cs.Index).SetZero()
		}
		cs := ct.Cases[disc]
		p := reflect.New(cs.Type.GoType)
		if err := d.decodeValue(cs.Type, p.Elem(), cur, append(path, cs.Name)); err != nil {
			return err
		}
		rv.Field(cs.Index).Set(p)
		return nil

	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			GoType(ct.GoType.String()).
			Detail("unhandled shape %v", ct.Kind).
			Build()
	}
}
