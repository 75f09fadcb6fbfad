package generator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mark3labs/swagen/internal/spec"
)

// Target languages plug into BuildView through a Language.
type Language struct {
	// Type renders a data type. A nil type is a void response.
	Type func(dt *spec.DataType) string
	// Ident makes a name a valid identifier of the given kind.
	Ident func(kind IdentKind, name string) string
}

type IdentKind int

const (
	EnumIdent IdentKind = iota
	EnumMemberIdent
	ModelIdent
	PropertyIdent
	ServiceIdent
	OperationIdent
	ParamIdent
)

// View is a Definition flattened into sorted slices for templates.
type View struct {
	Title       string
	Description string
	Version     string
	BaseURL     string
	Enums       []EnumView
	Models      []ModelView
	Services    []ServiceView
}

type EnumView struct {
	Name    string
	Members []EnumMember
}

type EnumMember struct {
	Name  string
	Value string
}

type ModelView struct {
	Name       string
	Properties []PropertyView
}

type PropertyView struct {
	Name     string
	WireName string
	Type     string
	Required bool
	DataType spec.DataType
}

type ServiceView struct {
	Name       string
	Operations []OperationView
}

type OperationView struct {
	Name         string
	Method       string // upper case
	Path         string
	Description  string
	Description2 string
	Deprecated   bool

	// Params lists required parameters first, otherwise in declared order.
	Params       []ParamView
	PathParams   []ParamView
	QueryParams  []ParamView
	HeaderParams []ParamView
	FormParams   []ParamView
	Body         *ParamView

	Result     string // rendered success type, "" when void
	ResultType *spec.DataType
}

type ParamView struct {
	Name        string
	WireName    string
	In          string
	Type        string
	Description string
	Required    bool
	IsArray     bool
	DataType    *spec.DataType
}

// BuildView flattens def for a language. Dangling references left by
// filtering are passed to lang.Type unchanged; languages decide how to
// render them with Known.
func BuildView(def *spec.Definition, lang Language) *View {
	v := &View{
		Title:       def.Metadata.Title,
		Description: def.Metadata.Description,
		Version:     def.Metadata.Version,
		BaseURL:     def.Metadata.BaseURL,
	}

	for _, name := range spec.SortedKeys(def.Enums) {
		ev := EnumView{Name: lang.Ident(EnumIdent, name)}
		seen := map[string]int{}
		for _, value := range def.Enums[name] {
			member := lang.Ident(EnumMemberIdent, value)
			if n := seen[member]; n > 0 {
				seen[member] = n + 1
				member = member + "_" + strconv.Itoa(n+1)
			} else {
				seen[member] = 1
			}
			ev.Members = append(ev.Members, EnumMember{Name: member, Value: value})
		}
		v.Enums = append(v.Enums, ev)
	}

	for _, name := range spec.SortedKeys(def.Models) {
		mv := ModelView{Name: lang.Ident(ModelIdent, name)}
		model := def.Models[name]
		for _, propName := range spec.SortedKeys(model) {
			prop := model[propName]
			wire := propName
			if prop.OriginalName != "" {
				wire = prop.OriginalName
			}
			dt := prop.DataType
			mv.Properties = append(mv.Properties, PropertyView{
				Name:     lang.Ident(PropertyIdent, propName),
				WireName: wire,
				Type:     lang.Type(&dt),
				Required: prop.Required,
				DataType: dt,
			})
		}
		v.Models = append(v.Models, mv)
	}

	for _, name := range spec.SortedKeys(def.Services) {
		sv := ServiceView{Name: lang.Ident(ServiceIdent, name)}
		service := def.Services[name]
		for _, opName := range spec.SortedKeys(service) {
			sv.Operations = append(sv.Operations, buildOperation(opName, service[opName], lang))
		}
		v.Services = append(v.Services, sv)
	}
	return v
}

func buildOperation(name string, op *spec.OperationDefinition, lang Language) OperationView {
	ov := OperationView{
		Name:         lang.Ident(OperationIdent, name),
		Method:       strings.ToUpper(string(op.Verb)),
		Path:         op.Path,
		Description:  op.Description,
		Description2: op.Description2,
		Deprecated:   op.Deprecated,
	}

	var required, optional []ParamView
	for _, p := range op.Parameters {
		wire := p.Name
		if p.OriginalName != "" {
			wire = p.OriginalName
		}
		pv := ParamView{
			Name:        lang.Ident(ParamIdent, p.Name),
			WireName:    wire,
			In:          p.Type,
			Type:        lang.Type(p.DataType),
			Description: p.Description,
			Required:    p.Required || p.Type == "path",
			IsArray:     p.DataType != nil && p.DataType.IsArray,
			DataType:    p.DataType,
		}
		if pv.Required {
			required = append(required, pv)
		} else {
			optional = append(optional, pv)
		}
		switch p.Type {
		case "path":
			ov.PathParams = append(ov.PathParams, pv)
		case "query":
			ov.QueryParams = append(ov.QueryParams, pv)
		case "header":
			ov.HeaderParams = append(ov.HeaderParams, pv)
		case "formData":
			ov.FormParams = append(ov.FormParams, pv)
		case "body":
			body := pv
			ov.Body = &body
		}
	}
	ov.Params = append(required, optional...)

	if dt := SuccessType(op); dt != nil {
		ov.ResultType = dt
		ov.Result = lang.Type(dt)
	}
	return ov
}

// SuccessType returns the data type of the lowest 2xx response that has a
// body, or nil.
func SuccessType(op *spec.OperationDefinition) *spec.DataType {
	for _, code := range spec.SortedKeys(op.Responses) {
		if !strings.HasPrefix(code, "2") {
			continue
		}
		if resp := op.Responses[code]; resp != nil && resp.DataType != nil {
			return resp.DataType
		}
	}
	return nil
}

// Known reports whether a complex or enum reference resolves in def.
func Known(def *spec.Definition, dt *spec.DataType) bool {
	switch {
	case dt == nil:
		return false
	case dt.Complex != "":
		_, ok := def.Models[dt.Complex]
		return ok
	case dt.Enum != "":
		_, ok := def.Enums[dt.Enum]
		return ok
	default:
		return true
	}
}

// Sanitize replaces characters that cannot appear in an identifier with
// underscores and prefixes a leading digit.
func Sanitize(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

// Escape guards an identifier against a keyword set by appending "_".
func Escape(name string, keywords map[string]bool) string {
	if keywords[name] {
		return name + "_"
	}
	return name
}
