package spec

import (
	"fmt"
	"sort"
)

// Definition is the language-neutral model of an API that generators consume.
// It is created by Parse, pruned by the filterer and renamed by the transform
// engine, in that order.
type Definition struct {
	Metadata Metadata                     `json:"metadata"`
	Services map[string]ServiceDefinition `json:"services"`
	Models   map[string]ModelDefinition   `json:"models"`
	Enums    map[string][]string          `json:"enums"`
}

type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	BaseURL     string `json:"baseUrl"`
}

type HttpMethod string

const (
	GET     HttpMethod = "get"
	PUT     HttpMethod = "put"
	POST    HttpMethod = "post"
	DELETE  HttpMethod = "delete"
	OPTIONS HttpMethod = "options"
	HEAD    HttpMethod = "head"
	PATCH   HttpMethod = "patch"
)

// Methods lists the verbs in the order operations are visited.
var Methods = []HttpMethod{GET, PUT, POST, DELETE, OPTIONS, HEAD, PATCH}

type Primitive string

const (
	Integer Primitive = "integer"
	Number  Primitive = "number"
	String  Primitive = "string"
	Boolean Primitive = "boolean"
	File    Primitive = "file"
	Object  Primitive = "object"
)

// DataType describes a property, parameter or response body. Exactly one of
// Primitive, Enum and Complex is set.
type DataType struct {
	IsArray   bool      `json:"isArray"`
	Primitive Primitive `json:"primitive,omitempty"`
	SubType   string    `json:"subType,omitempty"`
	Enum      string    `json:"enum,omitempty"`
	Complex   string    `json:"complex,omitempty"`

	// values holds the raw enum list of an enum-candidate until the
	// registry assigns it a name.
	values []string
}

// Validate checks that exactly one of Primitive, Enum and Complex is set.
func (d DataType) Validate() error {
	n := 0
	for _, s := range []string{string(d.Primitive), d.Enum, d.Complex} {
		if s != "" {
			n++
		}
	}
	if n != 1 {
		return Errorf(TypeResolution, "data type must set exactly one of primitive, enum or complex (got %d)", n)
	}
	return nil
}

// Property is a model field.
type Property struct {
	DataType
	Required     bool   `json:"required"`
	OriginalName string `json:"originalName,omitempty"`
}

// ModelDefinition maps property names to properties.
type ModelDefinition map[string]*Property

// ServiceDefinition maps operation names to operations.
type ServiceDefinition map[string]*OperationDefinition

type OperationDefinition struct {
	Path         string                         `json:"path"`
	Verb         HttpMethod                     `json:"verb"`
	Description  string                         `json:"description,omitempty"`
	Description2 string                         `json:"description2,omitempty"`
	Deprecated   bool                           `json:"deprecated,omitempty"`
	Parameters   []*ParameterDefinition         `json:"parameters"`
	Responses    map[string]*ResponseDefinition `json:"responses,omitempty"`
}

type ParameterDefinition struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"` // path|query|body|header|formData
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	DataType    *DataType `json:"dataType"`

	// OriginalName is the name on the wire, set when a transform renames
	// the parameter.
	OriginalName string `json:"originalName,omitempty"`
}

// ResponseDefinition carries the body type of one status code. DataType is
// nil for void responses.
type ResponseDefinition struct {
	DataType *DataType `json:"dataType,omitempty"`
}

// NewDefinition returns an empty Definition with all maps allocated.
func NewDefinition() *Definition {
	return &Definition{
		Services: map[string]ServiceDefinition{},
		Models:   map[string]ModelDefinition{},
		Enums:    map[string][]string{},
	}
}

// Validate checks the data type invariant for every type in the definition.
func (d *Definition) Validate() error {
	for _, name := range SortedKeys(d.Models) {
		for _, prop := range SortedKeys(d.Models[name]) {
			if err := d.Models[name][prop].DataType.Validate(); err != nil {
				return fmt.Errorf("model %s property %s: %w", name, prop, err)
			}
		}
	}
	for _, svc := range SortedKeys(d.Services) {
		for _, opName := range SortedKeys(d.Services[svc]) {
			op := d.Services[svc][opName]
			for _, p := range op.Parameters {
				if p.DataType == nil {
					return fmt.Errorf("operation %s.%s parameter %s: %w", svc, opName, p.Name, Errorf(TypeResolution, "missing data type"))
				}
				if err := p.DataType.Validate(); err != nil {
					return fmt.Errorf("operation %s.%s parameter %s: %w", svc, opName, p.Name, err)
				}
			}
			for _, code := range SortedKeys(op.Responses) {
				if dt := op.Responses[code].DataType; dt != nil {
					if err := dt.Validate(); err != nil {
						return fmt.Errorf("operation %s.%s response %s: %w", svc, opName, code, err)
					}
				}
			}
		}
	}
	return nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
