// Package python renders a Definition as a Python module with dataclass
// models and one requests-based client per service.
package python

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// Requests is the "requests" mode.
type Requests struct{}

var _ generator.Mode = Requests{}

func (Requests) Name() string        { return "requests" }
func (Requests) Description() string { return "Python dataclasses and requests-based service clients" }
func (Requests) Language() string    { return "Python" }
func (Requests) Extension() string   { return "py" }

func (Requests) DefaultTransforms() transform.Transforms {
	return transform.Transforms{
		transform.ModelName:     transform.MustChain("pascal-case"),
		transform.PropertyName:  transform.MustChain("snake-case"),
		transform.OperationName: transform.MustChain("snake-case"),
		transform.ServiceName:   transform.MustChain("pascal-case"),
		transform.ParameterName: transform.MustChain("snake-case"),
	}
}

// ValidateProfile accepts an optional "clientSuffix" option.
func (Requests) ValidateProfile(p *profile.Profile) error {
	for key := range p.Options {
		if key != "clientSuffix" {
			return generator.ProfileErrorf("unknown option %q (supported: clientSuffix)", key)
		}
	}
	if s := p.Option("clientSuffix"); s != "" && generator.Sanitize(s) != s {
		return generator.ProfileErrorf("options.clientSuffix %q is not a valid identifier suffix", s)
	}
	return nil
}

func (m Requests) Generate(def *spec.Definition, p *profile.Profile) (string, error) {
	if err := m.ValidateProfile(p); err != nil {
		return "", err
	}
	suffix := "Client"
	if s := p.Option("clientSuffix"); s != "" {
		suffix = s
	}
	view := generator.BuildView(def, generator.Language{Type: typeOf(def), Ident: ident})
	for i := range view.Models {
		// dataclass fields without defaults must come first
		props := view.Models[i].Properties
		sort.SliceStable(props, func(a, b int) bool { return props[a].Required && !props[b].Required })
	}
	return generator.Render("python", moduleTemplate, funcs, struct {
		*generator.View
		ClientSuffix string
	}{view, suffix})
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
	"async": true, "await": true, "break": true, "class": true, "continue": true, "def": true,
	"del": true, "elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// locals are the names generated methods assign.
var locals = map[string]bool{
	"self": true, "path": true, "query": true, "headers": true,
	"data": true, "files": true, "payload": true, "result": true,
}

func ident(kind generator.IdentKind, name string) string {
	switch kind {
	case generator.EnumMemberIdent:
		s := strings.ToUpper(naming.ToSnakeCase(name))
		if s == "" {
			s = "VALUE"
		}
		return generator.Escape(generator.Sanitize(s), keywords)
	case generator.ParamIdent:
		s := generator.Sanitize(name)
		if locals[s] {
			return s + "_"
		}
		return generator.Escape(s, keywords)
	}
	return generator.Escape(generator.Sanitize(name), keywords)
}

func typeOf(def *spec.Definition) func(dt *spec.DataType) string {
	return func(dt *spec.DataType) string {
		if dt == nil {
			return "None"
		}
		var t string
		switch {
		case dt.Complex != "":
			t = "Any"
			if generator.Known(def, dt) {
				t = ident(generator.ModelIdent, dt.Complex)
			}
		case dt.Enum != "":
			t = "str"
			if generator.Known(def, dt) {
				t = ident(generator.EnumIdent, dt.Enum)
			}
		default:
			t = primitive(dt)
		}
		if dt.IsArray {
			t = "List[" + t + "]"
		}
		return t
	}
}

func primitive(dt *spec.DataType) string {
	switch dt.Primitive {
	case spec.Integer:
		return "int"
	case spec.Number:
		return "float"
	case spec.Boolean:
		return "bool"
	case spec.File:
		return "bytes"
	case spec.String:
		return "str"
	default:
		return "Dict[str, Any]"
	}
}

var funcs = map[string]any{
	"params":    params,
	"docstring": docstring,
	"isFile":    isFile,
	"pyquote":   pyQuote,
}

// params renders the parameter list after self. Optional parameters
// default to None.
func params(op generator.OperationView) string {
	parts := []string{"self"}
	for _, p := range op.Params {
		if p.Required {
			parts = append(parts, p.Name+": "+p.Type)
		} else {
			parts = append(parts, p.Name+": Optional["+p.Type+"] = None")
		}
	}
	return strings.Join(parts, ", ")
}

// docstring renders an indented triple-quoted docstring, or nothing when
// every line is blank.
func docstring(indent string, texts ...string) string {
	var out []string
	for _, text := range texts {
		for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, strings.ReplaceAll(strings.ReplaceAll(l, `\`, `\\`), `"""`, `\"\"\"`))
			}
		}
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s\"\"\"%s\"\"\"\n", indent, out[0])
	}
	var b strings.Builder
	b.WriteString(indent + `"""` + out[0] + "\n\n")
	for _, l := range out[1:] {
		b.WriteString(indent + l + "\n")
	}
	b.WriteString(indent + `"""` + "\n")
	return b.String()
}

func isFile(p generator.ParamView) bool {
	return p.DataType != nil && p.DataType.Primitive == spec.File
}

// pyQuote renders s as a double-quoted Python string literal.
func pyQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case unicode.IsPrint(r):
				b.WriteRune(r)
			case r > 0xffff:
				fmt.Fprintf(&b, `\U%08x`, r)
			default:
				fmt.Fprintf(&b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
