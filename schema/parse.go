package schema

import (
	"bytes"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/Dentosal/pinecone/errors"
	"github.com/Dentosal/pinecone/internal/types"
)

// Schema is a compiled shape description. It is immutable after Parse
// and safe for concurrent use.
type Schema struct {
	root *types.CompiledType
}

// Parse compiles a schema document. The document is YAML; JSONC is
// accepted and normalized first, since JSON is a YAML subset.
func Parse(data []byte) (*Schema, error) {
	if looksLikeJSON(data) {
		data = jsonc.ToJSON(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("schema document is not valid YAML").
			Cause(err).
			Build()
	}
	if len(doc.Content) == 0 {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("schema document is empty").
			Build()
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("schema document must be a mapping with a root key").
			Build()
	}

	p := &parser{
		defs:       map[string]*yaml.Node{},
		built:      map[string]*types.CompiledType{},
		inProgress: map[*types.CompiledType]bool{},
	}

	var rootNode *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "types":
			if val.Kind != yaml.MappingNode {
				return nil, errors.Unsupported(nil, "types", "types must be a mapping of name to shape")
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				p.defs[val.Content[j].Value] = val.Content[j+1]
			}
		case "root":
			rootNode = val
		default:
			return nil, errors.Unsupported(nil, key.Value, "unknown schema document key")
		}
	}
	if rootNode == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Detail("schema document has no root shape").
			Build()
	}

	root, err := p.shapeFor(rootNode, []string{"root"})
	if err != nil {
		return nil, err
	}
	return &Schema{root: root}, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '/')
}

type parser struct {
	defs       map[string]*yaml.Node
	built      map[string]*types.CompiledType
	inProgress map[*types.CompiledType]bool
}

// resolve returns the shape for a named definition. The shape is
// registered before it is filled, so recursive definitions resolve to
// their own in-progress node.
func (p *parser) resolve(name string, path []string) (*types.CompiledType, error) {
	if ct, ok := p.built[name]; ok {
		return ct, nil
	}
	node, ok := p.defs[name]
	if !ok {
		return nil, errors.Unsupported(path, name, "reference to undefined type")
	}

	ct := &types.CompiledType{}
	p.built[name] = ct
	p.inProgress[ct] = true
	if err := p.fillShape(ct, node, append(path, name)); err != nil {
		return nil, err
	}
	delete(p.inProgress, ct)
	return ct, nil
}

// shapeFor returns the shape for a schema node. Scalar expressions go
// through the expression parser, which hands back canonical pointers
// for named types, so recursive references keep their identity.
func (p *parser) shapeFor(node *yaml.Node, path []string) (*types.CompiledType, error) {
	if node.Kind == yaml.ScalarNode {
		return p.parseExpr(node.Value, path)
	}
	ct := &types.CompiledType{}
	if err := p.fillShape(ct, node, path); err != nil {
		return nil, err
	}
	return ct, nil
}

// fillShape populates ct from a schema node: either a scalar type
// expression or a mapping declaring a record or variant.
func (p *parser) fillShape(ct *types.CompiledType, node *yaml.Node, path []string) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := p.parseExpr(node.Value, path)
		if err != nil {
			return err
		}
		if p.inProgress[parsed] {
			return errors.Unsupported(path, node.Value,
				"recursive alias; recurse through option, list or map instead")
		}
		*ct = *parsed
		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return errors.Unsupported(path, "", "shape mapping must have exactly one of record or variant")
		}
		kindKey, body := node.Content[0], node.Content[1]
		switch kindKey.Value {
		case "record":
			return p.fillRecord(ct, body, path)
		case "variant":
			return p.fillVariant(ct, body, path)
		default:
			return errors.Unsupported(path, kindKey.Value, "expected record or variant")
		}

	default:
		return errors.Unsupported(path, "", "shape must be a type expression or a record/variant mapping")
	}
}

func (p *parser) fillRecord(ct *types.CompiledType, body *yaml.Node, path []string) error {
	ct.Kind = types.KindRecord
	if body.Kind != yaml.MappingNode {
		return errors.Unsupported(path, "record", "record body must be a mapping of field name to shape")
	}

	fields := make([]types.Field, 0, len(body.Content)/2)
	for i := 0; i+1 < len(body.Content); i += 2 {
		name, child := body.Content[i].Value, body.Content[i+1]
		fieldType, err := p.shapeFor(child, append(path, name))
		if err != nil {
			return err
		}
		fields = append(fields, types.Field{
			Name:  name,
			Index: len(fields),
			Type:  fieldType,
		})
	}
	ct.Fields = fields
	return nil
}

func (p *parser) fillVariant(ct *types.CompiledType, body *yaml.Node, path []string) error {
	ct.Kind = types.KindVariant
	if body.Kind != yaml.MappingNode {
		return errors.Unsupported(path, "variant", "variant body must be a mapping of case name to shape")
	}

	cases := make([]types.Case, 0, len(body.Content)/2)
	for i := 0; i+1 < len(body.Content); i += 2 {
		name, child := body.Content[i].Value, body.Content[i+1]
		caseType, err := p.shapeFor(child, append(path, name))
		if err != nil {
			return err
		}
		cases = append(cases, types.Case{
			Name:  name,
			Index: len(cases),
			Type:  caseType,
		})
	}
	if len(cases) == 0 {
		return errors.Unsupported(path, "variant", "variant declares no cases")
	}
	ct.Cases = cases
	return nil
}
