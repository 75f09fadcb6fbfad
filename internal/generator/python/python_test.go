package python

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
	def.Metadata = spec.Metadata{Title: "Petstore", BaseURL: "https://petstore.example.com/v2"}
	def.Enums["status_Pet"] = []string{"available", "in stock"}
	def.Enums["empty_Thing"] = []string{}
	def.Models["Pet"] = spec.ModelDefinition{
		"petId":    {DataType: spec.DataType{Primitive: spec.Integer, SubType: "int64"}, Required: true},
		"status":   {DataType: spec.DataType{Enum: "status_Pet"}},
		"category": {DataType: spec.DataType{Complex: "Category"}},
		"tags":     {DataType: spec.DataType{IsArray: true, Complex: "Tag"}},
	}
	def.Models["Category"] = spec.ModelDefinition{}
	def.Services["pet"] = spec.ServiceDefinition{
		"getPetById": {
			Path:         "/pet/{petId}",
			Verb:         spec.GET,
			Description:  "Find a pet.",
			Description2: "Returns a single pet.",
			Parameters: []*spec.ParameterDefinition{
				{Name: "petId", Type: "path", Required: true, DataType: &spec.DataType{Primitive: spec.Integer}},
				{Name: "statusFilter", Type: "query", DataType: &spec.DataType{IsArray: true, Enum: "status_Pet"}},
				{Name: "X-Request-Id", Type: "header", DataType: &spec.DataType{Primitive: spec.String}},
			},
			Responses: map[string]*spec.ResponseDefinition{"200": {DataType: &spec.DataType{Complex: "Pet"}}},
		},
		"uploadFile": {
			Path:       "/pet/{petId}/uploadImage",
			Verb:       spec.POST,
			Deprecated: true,
			Parameters: []*spec.ParameterDefinition{
				{Name: "petId", Type: "path", Required: true, DataType: &spec.DataType{Primitive: spec.Integer}},
				{Name: "additionalMetadata", Type: "formData", DataType: &spec.DataType{Primitive: spec.String}},
				{Name: "file", Type: "formData", DataType: &spec.DataType{Primitive: spec.File}},
			},
		},
		"findPetsByStatus": {
			Path: "/pet/findByStatus",
			Verb: spec.GET,
			Parameters: []*spec.ParameterDefinition{
				{Name: "from", Type: "query", Required: true, DataType: &spec.DataType{Primitive: spec.String}},
			},
			Responses: map[string]*spec.ResponseDefinition{"200": {DataType: &spec.DataType{IsArray: true, Complex: "Pet"}}},
		},
	}
	require.NoError(t, transform.New(Requests{}.DefaultTransforms()).TransformDefinition(def))
	return def
}

func TestValidateProfile(t *testing.T) {
	p := &profile.Profile{Options: map[string]any{"clientSuffix": "Api"}}
	assert.NoError(t, Requests{}.ValidateProfile(p))

	p.Options["clientSuffix"] = "Api Client"
	assert.ErrorIs(t, Requests{}.ValidateProfile(p), generator.ErrInvalidProfile)

	p.Options = map[string]any{"package": "x"}
	err := Requests{}.ValidateProfile(p)
	assert.ErrorIs(t, err, generator.ErrInvalidProfile)
	assert.Contains(t, err.Error(), `unknown option "package"`)
}

func TestGenerate(t *testing.T) {
	out, err := Requests{}.Generate(petstore(t), &profile.Profile{})
	require.NoError(t, err)

	assert.Contains(t, out, "# Generated by swagen. Do not edit.\n# Petstore\n")
	assert.Contains(t, out, `BASE_URL = "https://petstore.example.com/v2"`)

	assert.Contains(t, out, "class StatusPet(str, Enum):\n    AVAILABLE = \"available\"\n    IN_STOCK = \"in stock\"\n")
	assert.Contains(t, out, "class EmptyThing(str, Enum):\n    pass\n")

	assert.Contains(t, out, "@dataclasses.dataclass\nclass Category:\n    pass\n")
	assert.Contains(t, out, "@dataclasses.dataclass\nclass Pet:\n"+
		"    pet_id: int = dataclasses.field(metadata={\"wire\": \"petId\"})\n"+
		"    category: Optional[Category] = dataclasses.field(default=None, metadata={\"wire\": \"category\"})\n"+
		"    status: Optional[StatusPet] = dataclasses.field(default=None, metadata={\"wire\": \"status\"})\n"+
		"    tags: Optional[List[Any]] = dataclasses.field(default=None, metadata={\"wire\": \"tags\"})\n")

	assert.Contains(t, out, "class PetClient:\n")
	assert.Contains(t, out, "    def get_pet_by_id(self, pet_id: int, status_filter: Optional[List[StatusPet]] = None, x_request_id: Optional[str] = None) -> Pet:\n"+
		"        \"\"\"Find a pet.\n\n        Returns a single pet.\n        \"\"\"\n"+
		"        path = \"/pet/{petId}\"\n"+
		"        path = path.replace(\"{petId}\", quote(str(_encode(pet_id)), safe=\"\"))\n")
	assert.Contains(t, out, "            query[\"statusFilter\"] = _encode(status_filter)\n")
	assert.Contains(t, out, "            headers[\"X-Request-Id\"] = str(_encode(x_request_id))\n")
	assert.Contains(t, out, "        return _decode(Pet, result)\n")

	assert.Contains(t, out, "    def find_pets_by_status(self, from_: str) -> List[Pet]:\n        path = \"/pet/findByStatus\"\n")
	assert.Contains(t, out, "        return _decode(List[Pet], result)\n")

	assert.Contains(t, out, "    def upload_file(self, pet_id: int, additional_metadata: Optional[str] = None, file: Optional[bytes] = None) -> None:\n        # deprecated\n")
	assert.Contains(t, out, "            data[\"additionalMetadata\"] = _encode(additional_metadata)\n")
	assert.Contains(t, out, "            files[\"file\"] = file\n")
}

func TestGenerateClientSuffix(t *testing.T) {
	out, err := Requests{}.Generate(petstore(t), &profile.Profile{Options: map[string]any{"clientSuffix": "Api"}})
	require.NoError(t, err)
	assert.Contains(t, out, "class PetApi:\n")
	assert.NotContains(t, out, "class PetClient:")
}

func TestIdent(t *testing.T) {
	assert.Equal(t, "class_", ident(generator.PropertyIdent, "class"))
	assert.Equal(t, "path_", ident(generator.ParamIdent, "path"))
	assert.Equal(t, "IN_STOCK", ident(generator.EnumMemberIdent, "in-stock"))
	assert.Equal(t, "_1", ident(generator.EnumMemberIdent, "1"))
	assert.Equal(t, "VALUE", ident(generator.EnumMemberIdent, ""))
}

func TestDocstring(t *testing.T) {
	assert.Empty(t, docstring("    ", "", " \n "))
	assert.Equal(t, "    \"\"\"Say \\\"\\\"\\\" hi.\"\"\"\n", docstring("    ", `Say """ hi.`))
}
