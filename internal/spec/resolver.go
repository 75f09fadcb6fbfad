package spec

import (
	"fmt"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
)

// schemaNode is the subset of a schema or parameter that carries type
// information.
type schemaNode struct {
	Ref    string
	Type   string
	Format string
	Enum   []any
	Items  *openapi3.SchemaRef
}

func nodeFromSchema(ref *openapi3.SchemaRef) (schemaNode, bool) {
	if ref == nil {
		return schemaNode{}, false
	}
	if ref.Ref != "" {
		return schemaNode{Ref: ref.Ref}, true
	}
	if ref.Value == nil {
		return schemaNode{}, false
	}
	s := ref.Value
	return schemaNode{Type: s.Type, Format: s.Format, Enum: s.Enum, Items: s.Items}, true
}

func nodeFromParameter(p *openapi2.Parameter) (schemaNode, bool) {
	if p == nil {
		return schemaNode{}, false
	}
	if p.Schema != nil {
		return nodeFromSchema(p.Schema)
	}
	return schemaNode{Ref: p.Ref, Type: p.Type, Format: p.Format, Enum: p.Enum, Items: p.Items}, true
}

// DataTypeResolver turns schema-like nodes into DataTypes. Enum-candidates
// come back with their raw values attached and no name; the caller registers
// them with an EnumRegistry.
type DataTypeResolver struct{}

// ResolveSchema resolves a definition, property or response schema.
func (r DataTypeResolver) ResolveSchema(ref *openapi3.SchemaRef, pointer string) (*DataType, error) {
	node, ok := nodeFromSchema(ref)
	if !ok {
		return nil, Errorf(TypeResolution, "type information could not be inferred from an empty schema").at(pointer)
	}
	return r.resolve(node, pointer)
}

// ResolveParameter resolves a parameter, descending into its schema when it
// has one.
func (r DataTypeResolver) ResolveParameter(p *openapi2.Parameter, pointer string) (*DataType, error) {
	node, ok := nodeFromParameter(p)
	if !ok {
		return nil, Errorf(TypeResolution, "type information could not be inferred from an empty parameter").at(pointer)
	}
	return r.resolve(node, pointer)
}

func (r DataTypeResolver) resolve(node schemaNode, pointer string) (*DataType, error) {
	dt := &DataType{}
	target := node
	if node.Ref == "" && node.Type == "array" {
		dt.IsArray = true
		items, ok := nodeFromSchema(node.Items)
		if !ok {
			return nil, Errorf(TypeResolution, "array properties must specify items").at(pointer)
		}
		target = items
		pointer += "/items"
	}

	switch {
	case target.Ref != "":
		name, err := resolveRef(target.Ref)
		if err != nil {
			return nil, err.at(pointer)
		}
		dt.Complex = name
	case target.Type != "":
		if target.Type == string(String) && len(target.Enum) > 0 {
			dt.values = enumValues(target.Enum)
		} else {
			dt.Primitive = Primitive(target.Type)
			dt.SubType = target.Format
		}
	default:
		return nil, Errorf(TypeResolution, "type information could not be inferred").at(pointer)
	}

	if dt.Complex == "" && dt.Primitive == "" && dt.values == nil {
		return nil, Errorf(TypeResolution, "could not figure out the type").at(pointer)
	}
	return dt, nil
}

// ResolveRef validates a $ref of the form #/definitions/<Name> and returns Name.
func ResolveRef(ref string) (string, error) {
	name, err := resolveRef(ref)
	if err != nil {
		return "", err
	}
	return name, nil
}

func resolveRef(ref string) (string, *SpecError) {
	if ref == "" {
		return "", Errorf(InvalidReference, "cannot resolve empty $ref")
	}
	parts := strings.Split(ref, "/")
	if len(parts) != 3 || parts[0] != "#" || parts[1] != "definitions" || parts[2] == "" {
		return "", Errorf(InvalidReference, "unrecognized or invalid $ref %q", ref)
	}
	return parts[2], nil
}

func enumValues(raw []any) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		switch t := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = t
		default:
			out[i] = fmt.Sprint(t)
		}
	}
	return out
}
