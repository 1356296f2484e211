package schema

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/Dentosal/pinecone/errors"
)

// The generic encode path accepts whatever Go values a YAML or JSON
// decoder produces: int for small numbers, uint64 or float64 for
// large ones. Coercion narrows them to the wire width, rejecting
// values that do not fit.

func coerceUint(v any, bits int, path []string) (uint64, error) {
	var u uint64
	switch n := v.(type) {
	case uint:
		u = uint64(n)
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case int:
		if n < 0 {
			return 0, rangeErr(v, bits, path)
		}
		u = uint64(n)
	case int8, int16, int32, int64:
		s := reflect.ValueOf(n).Int()
		if s < 0 {
			return 0, rangeErr(v, bits, path)
		}
		u = uint64(s)
	case string:
		// Map keys decode to strings; accept the round trip.
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, typeErr(path, "string", fmt.Sprintf("u%d", bits))
		}
		u = parsed
	default:
		return 0, typeErr(path, fmt.Sprintf("%T", v), fmt.Sprintf("u%d", bits))
	}
	if bits < 64 && u > (1<<bits)-1 {
		return 0, rangeErr(v, bits, path)
	}
	return u, nil
}

func coerceInt(v any, bits int, path []string) (int64, error) {
	var s int64
	switch n := v.(type) {
	case int:
		s = int64(n)
	case int8:
		s = int64(n)
	case int16:
		s = int64(n)
	case int32:
		s = int64(n)
	case int64:
		s = n
	case uint, uint8, uint16, uint32, uint64:
		u := reflect.ValueOf(n).Uint()
		if u > math.MaxInt64 {
			return 0, rangeErr(v, bits, path)
		}
		s = int64(u)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, typeErr(path, "string", fmt.Sprintf("s%d", bits))
		}
		s = parsed
	default:
		return 0, typeErr(path, fmt.Sprintf("%T", v), fmt.Sprintf("s%d", bits))
	}
	if bits < 64 {
		min, max := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		if s < min || s > max {
			return 0, rangeErr(v, bits, path)
		}
	}
	return s, nil
}

func coerceFloat(v any, path []string) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, typeErr(path, fmt.Sprintf("%T", v), "float")
	}
}

// typeErr reports a value that does not match the wire shape. This is
// an encode-time condition here, unlike the compile-phase constructor
// in the errors package.
func typeErr(path []string, got, want string) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(path...).
		GoType(got).
		Shape(want).
		Build()
}

func rangeErr(v any, bits int, path []string) error {
	return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
		Path(path...).
		Detail("value %v does not fit in %d bits", v, bits).
		Build()
}
