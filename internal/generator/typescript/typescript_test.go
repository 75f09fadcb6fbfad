package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

func petstore(t *testing.T) *spec.Definition {
	t.Helper()
	def := spec.NewDefinition()
	def.Metadata = spec.Metadata{Title: "Petstore", Version: "1.0.0", BaseURL: "https://petstore.example.com/v2"}
	def.Enums["status_Pet"] = []string{"available", "it's"}
	def.Models["pet"] = spec.ModelDefinition{
		"id":       {DataType: spec.DataType{Primitive: spec.Integer, SubType: "int64"}, Required: true},
		"status":   {DataType: spec.DataType{Enum: "status_Pet"}},
		"photo-id": {DataType: spec.DataType{Primitive: spec.String}},
		"owner":    {DataType: spec.DataType{Complex: "Owner"}},
		"tags":     {DataType: spec.DataType{IsArray: true, Primitive: spec.String}},
	}
	def.Services["pet"] = spec.ServiceDefinition{
		"getPetById": {
			Path:         "/pet/{petId}",
			Verb:         spec.GET,
			Description:  "Find pet by ID",
			Description2: "Returns a single pet",
			Parameters: []*spec.ParameterDefinition{
				{Name: "verbose", Type: "query", DataType: &spec.DataType{Primitive: spec.Boolean}},
				{Name: "petId", Type: "path", Required: true, DataType: &spec.DataType{Primitive: spec.Integer}},
				{Name: "api_key", Type: "header", DataType: &spec.DataType{Primitive: spec.String}},
			},
			Responses: map[string]*spec.ResponseDefinition{
				"200": {DataType: &spec.DataType{Complex: "pet"}},
			},
		},
		"addPet": {
			Path:       "/pet",
			Verb:       spec.POST,
			Deprecated: true,
			Parameters: []*spec.ParameterDefinition{
				{Name: "body", Type: "body", Required: true, DataType: &spec.DataType{Complex: "pet"}},
			},
		},
		"uploadFile": {
			Path: "/pet/{petId}/uploadImage",
			Verb: spec.POST,
			Parameters: []*spec.ParameterDefinition{
				{Name: "petId", Type: "path", Required: true, DataType: &spec.DataType{Primitive: spec.Integer}},
				{Name: "file", Type: "formData", DataType: &spec.DataType{Primitive: spec.File}},
			},
			Responses: map[string]*spec.ResponseDefinition{
				"200": {DataType: &spec.DataType{IsArray: true, Enum: "status_Pet"}},
			},
		},
	}
	require.NoError(t, transform.New(Fetch{}.DefaultTransforms()).TransformDefinition(def))
	return def
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, Fetch{}.ValidateProfile(&profile.Profile{Options: map[string]any{"clientSuffix": "Api"}}))
	err := Fetch{}.ValidateProfile(&profile.Profile{Options: map[string]any{"package": "x"}})
	assert.ErrorIs(t, err, generator.ErrInvalidProfile)
}

func TestGenerate(t *testing.T) {
	out, err := Fetch{}.Generate(petstore(t), &profile.Profile{})
	require.NoError(t, err)

	assert.Contains(t, out, "// Generated by swagen. Do not edit.\n// Petstore 1.0.0\n")
	assert.Contains(t, out, "export const BASE_URL = 'https://petstore.example.com/v2';")

	assert.Contains(t, out, "export interface Pet {\n"+
		"    id: number;\n"+
		"    owner?: any;\n"+
		"    'photo-id'?: string;\n"+
		"    status?: StatusPet;\n"+
		"    tags?: string[];\n"+
		"}")
	assert.Contains(t, out, `export type StatusPet = 'available' | 'it\'s';`)

	assert.Contains(t, out, "export class PetClient {")
	assert.Contains(t, out, "     * Find pet by ID\n     * Returns a single pet\n     */\n"+
		"    async getPetById(petId: number, verbose?: boolean, api_key?: string): Promise<Pet> {")
	assert.Contains(t, out, "appendAll(query, 'verbose', verbose);")
	assert.Contains(t, out, "headers['api_key'] = String(api_key);")
	assert.Contains(t, out, "const url = buildUrl(this.baseUrl, '/pet/' + encodeURIComponent(String(petId)), query);")
	assert.Contains(t, out, "return (await send(this.fetchImpl, 'GET', url, headers, body)) as Pet;")

	assert.Contains(t, out, "     * POST /pet\n     * @deprecated\n     */\n    async addPet(body_: Pet): Promise<void> {")
	assert.Contains(t, out, "const body = JSON.stringify(body_);")

	assert.Contains(t, out, "async uploadFile(petId: number, file?: Blob): Promise<StatusPet[]> {")
	assert.Contains(t, out, "appendAll(body, 'file', file);")
	assert.Contains(t, out, "'/pet/' + encodeURIComponent(String(petId)) + '/uploadImage'")
}

func TestGenerateClientSuffix(t *testing.T) {
	out, err := Fetch{}.Generate(petstore(t), &profile.Profile{Options: map[string]any{"clientSuffix": "Service"}})
	require.NoError(t, err)
	assert.Contains(t, out, "export class PetService {")
}

func TestPathExpr(t *testing.T) {
	op := generator.OperationView{
		Path:       "/a/{x}/{unknown}",
		PathParams: []generator.ParamView{{Name: "xValue", WireName: "x"}},
	}
	assert.Equal(t, "'/a/' + encodeURIComponent(String(xValue)) + '/' + '{unknown}'", pathExpr(op))
	assert.Equal(t, "''", pathExpr(generator.OperationView{}))
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "delete_", ident(generator.OperationIdent, "delete"))
	assert.Equal(t, "'x-y'", ident(generator.PropertyIdent, "x-y"))
	assert.Equal(t, "$ref", ident(generator.PropertyIdent, "$ref"))
	assert.Equal(t, "body_", ident(generator.ParamIdent, "body"))
	assert.Equal(t, "x_y", ident(generator.ModelIdent, "x-y"))
}
