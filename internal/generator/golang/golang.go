// Package golang renders a Definition as a Go package with one net/http
// client per service.
package golang

import (
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// NetHTTP is the "net-http" mode.
type NetHTTP struct{}

var _ generator.Mode = NetHTTP{}

func (NetHTTP) Name() string        { return "net-http" }
func (NetHTTP) Description() string { return "Go structs and net/http service clients" }
func (NetHTTP) Language() string    { return "Go" }
func (NetHTTP) Extension() string   { return "go" }

func (NetHTTP) DefaultTransforms() transform.Transforms {
	return transform.Transforms{
		transform.ModelName:     transform.MustChain("pascal-case"),
		transform.PropertyName:  transform.MustChain("pascal-case"),
		transform.OperationName: transform.MustChain("pascal-case"),
		transform.ServiceName:   transform.MustChain("pascal-case"),
		transform.ParameterName: transform.MustChain("camel-case"),
	}
}

// ValidateProfile requires options.package to be a valid package name.
func (NetHTTP) ValidateProfile(p *profile.Profile) error {
	pkg := p.Option("package")
	if pkg == "" {
		return generator.ProfileErrorf("the go generator requires options.package")
	}
	if !token.IsIdentifier(pkg) || token.IsKeyword(pkg) {
		return generator.ProfileErrorf("options.package %q is not a valid Go package name", pkg)
	}
	for key := range p.Options {
		if key != "package" {
			return generator.ProfileErrorf("unknown option %q (supported: package)", key)
		}
	}
	return nil
}

func (m NetHTTP) Generate(def *spec.Definition, p *profile.Profile) (string, error) {
	if err := m.ValidateProfile(p); err != nil {
		return "", err
	}
	view := generator.BuildView(def, generator.Language{Type: typeOf(def), Ident: ident})
	g := goTypes{def: def}
	src, err := generator.Render("go", fileTemplate, g.funcs(), struct {
		*generator.View
		Package string
	}{view, p.Option("package")})
	if err != nil {
		return "", err
	}
	formatted, err := format.Source([]byte(src))
	if err != nil {
		return "", fmt.Errorf("format generated Go: %w", err)
	}
	return string(formatted), nil
}

// reserved covers Go keywords and the locals of generated methods.
var reserved = map[string]bool{
	"c": true, "ctx": true, "result": true, "err": true,
	"reqPath": true, "reqQuery": true, "reqHeader": true, "reqBody": true, "form": true,
}

func ident(kind generator.IdentKind, name string) string {
	s := generator.Sanitize(name)
	switch kind {
	case generator.ParamIdent:
		s = naming.ToLowerFirst(s)
		if token.IsKeyword(s) || reserved[s] {
			s += "_"
		}
		return s
	case generator.EnumMemberIdent:
		s = generator.Sanitize(naming.ToPascalCase(name))
	}
	return exported(s)
}

func exported(s string) string {
	r := []rune(s)
	if len(r) == 0 || !unicode.IsLetter(r[0]) {
		return "X" + s
	}
	return naming.ToTitleCase(s)
}

func typeOf(def *spec.Definition) func(dt *spec.DataType) string {
	return func(dt *spec.DataType) string {
		if dt == nil {
			return ""
		}
		var t string
		switch {
		case dt.Complex != "":
			t = "json.RawMessage"
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
			t = "[]" + t
		}
		return t
	}
}

func primitive(dt *spec.DataType) string {
	switch dt.Primitive {
	case spec.Integer:
		switch dt.SubType {
		case "int32":
			return "int32"
		case "int64":
			return "int64"
		}
		return "int"
	case spec.Number:
		if dt.SubType == "float" {
			return "float32"
		}
		return "float64"
	case spec.Boolean:
		return "bool"
	case spec.File:
		return "[]byte"
	case spec.String:
		return "string"
	default:
		return "map[string]any"
	}
}

type goTypes struct {
	def *spec.Definition
}

// isStruct reports whether dt renders as a generated struct, which is
// always passed and stored by pointer.
func (g goTypes) isStruct(dt *spec.DataType) bool {
	return dt != nil && dt.Complex != "" && !dt.IsArray && generator.Known(g.def, dt)
}

func (g goTypes) funcs() map[string]any {
	return map[string]any{
		"fieldType": func(p generator.PropertyView) string {
			if g.isStruct(&p.DataType) {
				return "*" + p.Type
			}
			return p.Type
		},
		"paramType": func(p generator.ParamView) string {
			switch {
			case g.isStruct(p.DataType):
				return "*" + p.Type
			case p.Required || nilable(p.Type):
				return p.Type
			default:
				return "*" + p.Type
			}
		},
		"resultType": func(op generator.OperationView) string {
			if g.isStruct(op.ResultType) {
				return "*" + op.Result
			}
			return op.Result
		},
		"setValues": setValues,
		"comment":   comment,
	}
}

func nilable(t string) bool {
	return strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "map[") || t == "json.RawMessage"
}

// setValues renders the statements that copy a parameter into a
// url.Values or http.Header named target.
func setValues(target string, p generator.ParamView) string {
	key := fmt.Sprintf("%q", p.WireName)
	switch {
	case p.IsArray:
		return fmt.Sprintf("for _, v := range %s {\n%s.Add(%s, fmt.Sprint(v))\n}", p.Name, target, key)
	case p.Required || nilable(p.Type):
		return fmt.Sprintf("%s.Set(%s, fmt.Sprint(%s))", target, key, p.Name)
	default:
		return fmt.Sprintf("if %s != nil {\n%s.Set(%s, fmt.Sprint(*%s))\n}", p.Name, target, key, p.Name)
	}
}

// comment renders a doc comment whose first line starts with name.
func comment(name string, lines ...string) string {
	var out []string
	for _, l := range lines {
		for _, part := range strings.Split(strings.ReplaceAll(l, "\r\n", "\n"), "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return ""
	}
	out[0] = name + " " + naming.ToLowerFirst(out[0])
	return "// " + strings.Join(out, "\n// ")
}
