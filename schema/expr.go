package schema

import (
	"strconv"
	"strings"

	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/types"
)

// primitives maps type-expression atoms to their wire kinds.
var primitives = map[string]types.Kind{
	"bool":   types.KindBool,
	"u8":     types.KindU8,
	"s8":     types.KindS8,
	"u16":    types.KindU16,
	"s16":    types.KindS16,
	"u32":    types.KindU32,
	"s32":    types.KindS32,
	"u64":    types.KindU64,
	"s64":    types.KindS64,
	"f32":    types.KindF32,
	"f64":    types.KindF64,
	"uint":   types.KindUint,
	"char":   types.KindChar,
	"string": types.KindString,
	"bytes":  types.KindBytes,
}

// exprScanner walks a type expression like "map<string, list<u8>>".
type exprScanner struct {
	src  string
	pos  int
	path []string
}

func (s *exprScanner) errf(detail string) error {
	return errors.Unsupported(s.path, s.src, detail)
}

func (s *exprScanner) skipSpace() {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// ident consumes a name: letters, digits and underscores.
func (s *exprScanner) ident() string {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '<' || c == '>' || c == ',' || c == ' ' || c == '\t' {
			break
		}
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *exprScanner) expect(c byte) error {
	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != c {
		return s.errf("expected " + string(c) + " in type expression")
	}
	s.pos++
	return nil
}

// parseExpr parses one type expression, resolving names through p.
func (p *parser) parseExpr(expr string, path []string) (*types.CompiledType, error) {
	s := &exprScanner{src: expr, path: path}
	ct, err := p.scanType(s)
	if err != nil {
		return nil, err
	}
	s.skipSpace()
	if s.pos != len(s.src) {
		return nil, s.errf("trailing characters in type expression")
	}
	return ct, nil
}

func (p *parser) scanType(s *exprScanner) (*types.CompiledType, error) {
	name := s.ident()
	if name == "" {
		return nil, s.errf("empty type expression")
	}

	if k, ok := primitives[name]; ok {
		return &types.CompiledType{Kind: k}, nil
	}

	switch name {
	case "unit":
		return &types.CompiledType{Kind: types.KindRecord}, nil

	case "list", "option":
		if err := s.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.scanType(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect('>'); err != nil {
			return nil, err
		}
		k := types.KindList
		if name == "option" {
			k = types.KindOption
		}
		return &types.CompiledType{Kind: k, Elem: elem}, nil

	case "map":
		if err := s.expect('<'); err != nil {
			return nil, err
		}
		key, err := p.scanType(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect(','); err != nil {
			return nil, err
		}
		val, err := p.scanType(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect('>'); err != nil {
			return nil, err
		}
		return &types.CompiledType{Kind: types.KindMap, Key: key, Elem: val}, nil

	case "array":
		if err := s.expect('<'); err != nil {
			return nil, err
		}
		elem, err := p.scanType(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect(','); err != nil {
			return nil, err
		}
		lenTok := s.ident()
		n, err := strconv.Atoi(strings.TrimSpace(lenTok))
		if err != nil || n < 0 {
			return nil, s.errf("array length must be a non-negative integer")
		}
		if err := s.expect('>'); err != nil {
			return nil, err
		}
		return &types.CompiledType{Kind: types.KindTuple, Elem: elem, Len: n}, nil
	}

	return p.resolve(name, s.path)
}
