package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/spec"
)

func plainLanguage(def *spec.Definition) Language {
	return Language{
		Type: func(dt *spec.DataType) string {
			if dt == nil {
				return ""
			}
			t := string(dt.Primitive) + dt.Enum + dt.Complex
			if !Known(def, dt) {
				t = "unknown"
			}
			if dt.IsArray {
				t += "[]"
			}
			return t
		},
		Ident: func(_ IdentKind, name string) string { return strings.ToUpper(Sanitize(name)) },
	}
}

func viewDefinition() *spec.Definition {
	def := spec.NewDefinition()
	def.Metadata = spec.Metadata{Title: "Pets", Version: "2", BaseURL: "http://localhost/"}
	def.Enums["kind"] = []string{"a-b", "a_b", "c"}
	def.Models["Pet"] = spec.ModelDefinition{
		"petId": {DataType: spec.DataType{Primitive: spec.Integer}, Required: true, OriginalName: "pet_id"},
		"owner": {DataType: spec.DataType{Complex: "Owner"}},
	}
	def.Services["pet"] = spec.ServiceDefinition{
		"update": {
			Path: "/pet/{id}",
			Verb: spec.PUT,
			Parameters: []*spec.ParameterDefinition{
				{Name: "verbose", Type: "query", DataType: &spec.DataType{Primitive: spec.Boolean}},
				{Name: "petId", OriginalName: "id", Type: "path", DataType: &spec.DataType{Primitive: spec.Integer}},
				{Name: "tags", Type: "formData", DataType: &spec.DataType{IsArray: true, Primitive: spec.String}},
				{Name: "X-Trace", Type: "header", DataType: &spec.DataType{Primitive: spec.String}},
				{Name: "body", Type: "body", Required: true, DataType: &spec.DataType{Complex: "Pet"}},
			},
			Responses: map[string]*spec.ResponseDefinition{
				"400": {DataType: &spec.DataType{Primitive: spec.String}},
				"204": {},
				"201": {DataType: &spec.DataType{Complex: "Pet"}},
				"200": {},
			},
		},
	}
	return def
}

func TestBuildView(t *testing.T) {
	def := viewDefinition()
	v := BuildView(def, plainLanguage(def))

	assert.Equal(t, "Pets", v.Title)
	assert.Equal(t, "2", v.Version)
	assert.Equal(t, "http://localhost/", v.BaseURL)

	require.Len(t, v.Enums, 1)
	assert.Equal(t, []EnumMember{
		{Name: "A_B", Value: "a-b"},
		{Name: "A_B_2", Value: "a_b"},
		{Name: "C", Value: "c"},
	}, v.Enums[0].Members)

	require.Len(t, v.Models, 1)
	props := v.Models[0].Properties
	require.Len(t, props, 2)
	assert.Equal(t, "OWNER", props[0].Name)
	assert.Equal(t, "unknown", props[0].Type, "dangling references reach the language")
	assert.Equal(t, "PETID", props[1].Name)
	assert.Equal(t, "pet_id", props[1].WireName)
	assert.True(t, props[1].Required)

	require.Len(t, v.Services, 1)
	op := v.Services[0].Operations[0]
	assert.Equal(t, "PUT", op.Method)
	assert.Equal(t, "/pet/{id}", op.Path)

	var names []string
	for _, p := range op.Params {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"PETID", "BODY", "VERBOSE", "TAGS", "X_TRACE"}, names)

	require.Len(t, op.PathParams, 1)
	assert.Equal(t, "id", op.PathParams[0].WireName)
	assert.True(t, op.PathParams[0].Required, "path parameters are always required")
	require.Len(t, op.QueryParams, 1)
	require.Len(t, op.HeaderParams, 1)
	assert.Equal(t, "X-Trace", op.HeaderParams[0].WireName)
	require.Len(t, op.FormParams, 1)
	assert.True(t, op.FormParams[0].IsArray)
	require.NotNil(t, op.Body)
	assert.Equal(t, "Pet", op.Body.Type)

	assert.Equal(t, "Pet", op.Result, "the lowest 2xx code with a body wins")
}

func TestSuccessTypeVoid(t *testing.T) {
	op := &spec.OperationDefinition{Responses: map[string]*spec.ResponseDefinition{
		"204":     {},
		"default": {DataType: &spec.DataType{Primitive: spec.String}},
	}}
	assert.Nil(t, SuccessType(op))
}

func TestSanitizeAndEscape(t *testing.T) {
	assert.Equal(t, "pet_id", Sanitize("pet-id"))
	assert.Equal(t, "_2fa", Sanitize("2fa"))
	assert.Equal(t, "_", Sanitize(""))
	assert.Equal(t, "a_b_c", Sanitize("a.b c"))
	assert.Equal(t, "class_", Escape("class", map[string]bool{"class": true}))
	assert.Equal(t, "pet", Escape("pet", map[string]bool{"class": true}))
}

func TestRender(t *testing.T) {
	out, err := Render("t", `{{squote .}} {{lowerFirst "Pet"}} {{shout .}}`, map[string]any{
		"shout": strings.ToUpper,
	}, "it's")
	require.NoError(t, err)
	assert.Equal(t, `'it\'s' pet IT'S`, out)

	_, err = Render("broken", `{{.Missing`, nil, nil)
	assert.ErrorContains(t, err, "parse broken template")
}
