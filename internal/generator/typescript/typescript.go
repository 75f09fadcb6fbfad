// Package typescript renders a Definition as a TypeScript module with one
// fetch-based client class per service.
package typescript

import (
	"regexp"
	"strings"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// Fetch is the "fetch" mode.
type Fetch struct{}

var _ generator.Mode = Fetch{}

func (Fetch) Name() string        { return "fetch" }
func (Fetch) Description() string { return "TypeScript interfaces and fetch-based service clients" }
func (Fetch) Language() string    { return "TypeScript" }
func (Fetch) Extension() string   { return "ts" }

func (Fetch) DefaultTransforms() transform.Transforms {
	return transform.Transforms{
		transform.ModelName:   transform.MustChain("pascal-case"),
		transform.ServiceName: transform.MustChain("pascal-case"),
	}
}

// ValidateProfile accepts an optional "clientSuffix" option.
func (Fetch) ValidateProfile(p *profile.Profile) error {
	for key := range p.Options {
		if key != "clientSuffix" {
			return generator.ProfileErrorf("unknown option %q (supported: clientSuffix)", key)
		}
	}
	return nil
}

func (Fetch) Generate(def *spec.Definition, p *profile.Profile) (string, error) {
	suffix := "Client"
	if p != nil {
		if s := p.Option("clientSuffix"); s != "" {
			suffix = s
		}
	}
	view := generator.BuildView(def, generator.Language{Type: typeOf(def), Ident: ident})
	return generator.Render("typescript", moduleTemplate, funcs, struct {
		*generator.View
		ClientSuffix string
	}{view, suffix})
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "false": true, "finally": true, "for": true, "function": true,
	"if": true, "import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
	"let": true, "static": true, "yield": true, "await": true, "package": true, "private": true,
	"protected": true, "public": true, "interface": true, "implements": true,
}

// locals are the names generated methods declare.
var locals = map[string]bool{"query": true, "headers": true, "body": true, "url": true}

func ident(kind generator.IdentKind, name string) string {
	if kind == generator.PropertyIdent {
		if identPattern.MatchString(name) {
			return name
		}
		return generator.SingleQuote(name)
	}
	out := generator.Sanitize(name)
	switch kind {
	case generator.ParamIdent:
		if locals[out] {
			return out + "_"
		}
		out = generator.Escape(out, keywords)
	case generator.OperationIdent:
		out = generator.Escape(out, keywords)
	}
	return out
}

func typeOf(def *spec.Definition) func(dt *spec.DataType) string {
	return func(dt *spec.DataType) string {
		if dt == nil {
			return "void"
		}
		var t string
		switch {
		case dt.Complex != "":
			t = "any"
			if generator.Known(def, dt) {
				t = ident(generator.ModelIdent, dt.Complex)
			}
		case dt.Enum != "":
			t = "string"
			if generator.Known(def, dt) {
				t = ident(generator.EnumIdent, dt.Enum)
			}
		default:
			t = primitive(dt)
		}
		if dt.IsArray {
			t += "[]"
		}
		return t
	}
}

func primitive(dt *spec.DataType) string {
	switch dt.Primitive {
	case spec.Integer, spec.Number:
		return "number"
	case spec.Boolean:
		return "boolean"
	case spec.File:
		return "Blob"
	case spec.String:
		return "string"
	default:
		return "any"
	}
}

var funcs = map[string]any{
	"params":   params,
	"pathExpr": pathExpr,
}

// params renders a parameter list. Optional parameters follow required ones.
func params(op generator.OperationView) string {
	parts := make([]string, 0, len(op.Params))
	for _, p := range op.Params {
		if p.Required {
			parts = append(parts, p.Name+": "+p.Type)
		} else {
			parts = append(parts, p.Name+"?: "+p.Type)
		}
	}
	return strings.Join(parts, ", ")
}

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

// pathExpr renders the operation path as a string expression with every
// path parameter URI-encoded.
func pathExpr(op generator.OperationView) string {
	byWire := map[string]string{}
	for _, p := range op.PathParams {
		byWire[p.WireName] = p.Name
	}
	var parts []string
	last := 0
	for _, m := range pathParam.FindAllStringSubmatchIndex(op.Path, -1) {
		if m[0] > last {
			parts = append(parts, generator.SingleQuote(op.Path[last:m[0]]))
		}
		wire := op.Path[m[2]:m[3]]
		if name, ok := byWire[wire]; ok {
			parts = append(parts, "encodeURIComponent(String("+name+"))")
		} else {
			parts = append(parts, generator.SingleQuote(op.Path[m[0]:m[1]]))
		}
		last = m[1]
	}
	if last < len(op.Path) || len(parts) == 0 {
		parts = append(parts, generator.SingleQuote(op.Path[last:]))
	}
	return strings.Join(parts, " + ")
}
