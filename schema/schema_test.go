package schema

import (
	"testing"

	"github.com/Dentosal/pinecone/internal/types"
)

func mustParse(t *testing.T, doc string) *Schema {
	t.Helper()
	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParse_Primitives(t *testing.T) {
	tests := []struct {
		expr string
		want types.Kind
	}{
		{"bool", types.KindBool},
		{"u8", types.KindU8},
		{"s64", types.KindS64},
		{"f32", types.KindF32},
		{"uint", types.KindUint},
		{"char", types.KindChar},
		{"string", types.KindString},
		{"bytes", types.KindBytes},
		{"unit", types.KindRecord},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s := mustParse(t, "root: "+tt.expr)
			if s.root.Kind != tt.want {
				t.Errorf("kind = %v, want %v", s.root.Kind, tt.want)
			}
		})
	}
}

func TestParse_Composites(t *testing.T) {
	s := mustParse(t, "root: map<string, list<option<u32>>>")
	if s.root.Kind != types.KindMap || s.root.Key.Kind != types.KindString {
		t.Fatalf("root = %+v", s.root)
	}
	lst := s.root.Elem
	if lst.Kind != types.KindList || lst.Elem.Kind != types.KindOption || lst.Elem.Elem.Kind != types.KindU32 {
		t.Errorf("value chain = %v %v %v", lst.Kind, lst.Elem.Kind, lst.Elem.Elem.Kind)
	}

	s = mustParse(t, "root: array<u8, 32>")
	if s.root.Kind != types.KindTuple || s.root.Len != 32 || s.root.Elem.Kind != types.KindU8 {
		t.Errorf("array = %+v", s.root)
	}
}

func TestParse_NamedTypes(t *testing.T) {
	s := mustParse(t, `
types:
  point:
    record:
      x: u32
      y: u32
root: list<point>
`)
	pt := s.root.Elem
	if pt.Kind != types.KindRecord || len(pt.Fields) != 2 {
		t.Fatalf("point = %+v", pt)
	}
	if pt.Fields[0].Name != "x" || pt.Fields[1].Name != "y" {
		t.Errorf("field order: %s, %s", pt.Fields[0].Name, pt.Fields[1].Name)
	}
}

func TestParse_Variant(t *testing.T) {
	s := mustParse(t, `
types:
  shape:
    variant:
      circle: f64
      rect:
        record:
          w: f64
          h: f64
      empty: unit
root: shape
`)
	if s.root.Kind != types.KindVariant || len(s.root.Cases) != 3 {
		t.Fatalf("root = %+v", s.root)
	}
	if s.root.Cases[0].Name != "circle" || s.root.Cases[2].Name != "empty" {
		t.Errorf("case order: %s .. %s", s.root.Cases[0].Name, s.root.Cases[2].Name)
	}
	if s.root.Cases[1].Type.Kind != types.KindRecord {
		t.Errorf("rect payload = %v", s.root.Cases[1].Type.Kind)
	}
}

func TestParse_Recursive(t *testing.T) {
	s := mustParse(t, `
types:
  node:
    record:
      value: u32
      next: option<node>
root: node
`)
	next := s.root.Fields[1].Type
	if next.Kind != types.KindOption {
		t.Fatalf("next = %v", next.Kind)
	}
	if next.Elem != s.root {
		t.Error("recursive reference should resolve to the same shape node")
	}
}

func TestParse_JSONC(t *testing.T) {
	s := mustParse(t, `{
  // a point in the plane
  "types": {
    "point": {"record": {"x": "u32", "y": "u32"}},
  },
  "root": "point",
}`)
	if s.root.Kind != types.KindRecord || len(s.root.Fields) != 2 {
		t.Errorf("root = %+v", s.root)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"no root", "types: {a: u8}"},
		{"undefined reference", "root: nosuch"},
		{"unknown key", "root: u8\nextra: 1"},
		{"bad expression", "root: list<u8"},
		{"trailing garbage", "root: u8 u8"},
		{"bad array length", "root: array<u8, many>"},
		{"empty variant", "root: {variant: {}}"},
		{"recursive alias", "types: {a: b, b: a}\nroot: a"},
		{"not yaml", ": : :"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.doc)
			}
		})
	}
}
