package codec

import (
	"reflect"
	"sync"

	"github.com/Dentosal/pinecone/errors"
)

var (
	charType    = reflect.TypeOf(Char(0))
	variantType = reflect.TypeOf(Variant{})
)

// Compiler derives wire shapes from Go types. Compiled shapes are
// cached, so deriving is paid once per type; the cache is safe for
// concurrent use and is the only state shared between calls.
type Compiler struct {
	cache sync.Map // reflect.Type -> *CompiledType
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile returns the shape tree for t, deriving and caching it on
// first use.
func (c *Compiler) Compile(t reflect.Type) (*CompiledType, error) {
	if t == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("cannot derive a shape for a nil value").
			Build()
	}

	if cached, ok := c.cache.Load(t); ok {
		return cached.(*CompiledType), nil
	}

	ct, err := c.compile(t, nil, map[reflect.Type]*CompiledType{})
	if err != nil {
		return nil, err
	}

	c.cache.Store(t, ct)
	return ct, nil
}

// compile builds the shape tree for t. The seen map carries types
// already being compiled in this call, so recursive types (linked
// lists, trees) resolve to their own in-progress node instead of
// recursing forever.
func (c *Compiler) compile(t reflect.Type, path []string, seen map[reflect.Type]*CompiledType) (*CompiledType, error) {
	if ct, ok := seen[t]; ok {
		return ct, nil
	}

	ct := &CompiledType{GoType: t}
	seen[t] = ct

	if t == charType {
		ct.Kind = KindChar
		return ct, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		ct.Kind = KindBool
	case reflect.Uint8:
		ct.Kind = KindU8
	case reflect.Int8:
		ct.Kind = KindS8
	case reflect.Uint16:
		ct.Kind = KindU16
	case reflect.Int16:
		ct.Kind = KindS16
	case reflect.Uint32:
		ct.Kind = KindU32
	case reflect.Int32:
		// rune lands here; see codec.Char for code-point encoding
		ct.Kind = KindS32
	case reflect.Uint64:
		ct.Kind = KindU64
	case reflect.Int64:
		ct.Kind = KindS64
	case reflect.Float32:
		ct.Kind = KindF32
	case reflect.Float64:
		ct.Kind = KindF64
	case reflect.Uint, reflect.Uintptr:
		ct.Kind = KindUint
	case reflect.Int:
		return nil, errors.Unsupported(path, t.String(),
			"platform-width int has no wire representation; use a sized integer type or uint")
	case reflect.String:
		ct.Kind = KindString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			ct.Kind = KindBytes
			return ct, nil
		}
		ct.Kind = KindList
		elem, err := c.compile(t.Elem(), append(path, "[elem]"), seen)
		if err != nil {
			return nil, err
		}
		ct.Elem = elem
	case reflect.Array:
		ct.Kind = KindTuple
		ct.Len = t.Len()
		elem, err := c.compile(t.Elem(), append(path, "[elem]"), seen)
		if err != nil {
			return nil, err
		}
		ct.Elem = elem
	case reflect.Map:
		ct.Kind = KindMap
		key, err := c.compile(t.Key(), append(path, "[key]"), seen)
		if err != nil {
			return nil, err
		}
		elem, err := c.compile(t.Elem(), append(path, "[value]"), seen)
		if err != nil {
			return nil, err
		}
		ct.Key = key
		ct.Elem = elem
	case reflect.Pointer:
		ct.Kind = KindOption
		elem, err := c.compile(t.Elem(), append(path, "[some]"), seen)
		if err != nil {
			return nil, err
		}
		ct.Elem = elem
	case reflect.Struct:
		if isVariantStruct(t) {
			return ct, c.compileVariant(ct, t, path, seen)
		}
		return ct, c.compileRecord(ct, t, path, seen)
	default:
		return nil, errors.Unsupported(path, t.String(), "no wire representation")
	}

	return ct, nil
}

func isVariantStruct(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == variantType {
			return true
		}
	}
	return false
}

// skipField reports whether a struct field has no wire presence.
func skipField(f reflect.StructField) bool {
	if !f.IsExported() {
		return true
	}
	if f.Anonymous && f.Type == variantType {
		return true
	}
	return f.Tag.Get("pine") == "-"
}

func (c *Compiler) compileRecord(ct *CompiledType, t reflect.Type, path []string, seen map[reflect.Type]*CompiledType) error {
	ct.Kind = KindRecord

	fields := make([]CompiledField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if skipField(f) {
			continue
		}

		fieldType, err := c.compile(f.Type, append(path, f.Name), seen)
		if err != nil {
			return err
		}
		fields = append(fields, CompiledField{
			Name:  f.Name,
			Index: i,
			Type:  fieldType,
		})
	}

	ct.Fields = fields
	return nil
}

func (c *Compiler) compileVariant(ct *CompiledType, t reflect.Type, path []string, seen map[reflect.Type]*CompiledType) error {
	ct.Kind = KindVariant

	cases := make([]CompiledCase, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if skipField(f) {
			continue
		}

		casePath := append(path, f.Name)
		if f.Type.Kind() != reflect.Pointer {
			return errors.TypeMismatch(casePath, f.Type.String(), "variant case (pointer field)")
		}

		caseType, err := c.compile(f.Type.Elem(), casePath, seen)
		if err != nil {
			return err
		}
		cases = append(cases, CompiledCase{
			Name:  f.Name,
			Index: i,
			Type:  caseType,
		})
	}

	if len(cases) == 0 {
		return errors.Unsupported(path, t.String(), "variant declares no cases")
	}

	ct.Cases = cases
	return nil
}
