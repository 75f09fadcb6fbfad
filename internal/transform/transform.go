// Package transform renames the entities of a spec.Definition through
// per-target chains of built-in or custom transforms.
package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/swagen/internal/spec"
)

// Target is the kind of name a chain applies to.
type Target string

const (
	ServiceName   Target = "serviceName"
	OperationName Target = "operationName"
	ParameterName Target = "parameterName"
	ModelName     Target = "modelName"
	PropertyName  Target = "propertyName"
)

// Targets lists every target in the order the engine visits them.
var Targets = []Target{ModelName, PropertyName, ParameterName, OperationName, ServiceName}

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", spec.Errorf(spec.TransformConfig, "unknown transform target %q", s)
}

// ModelType distinguishes models from enums in Details.
type ModelType string

const (
	ModelComplex ModelType = "complex"
	ModelEnum    ModelType = "enum"
)

// Details is the context handed to a transform. Which fields are set
// depends on the target:
//
//	modelName (enum):    ModelType, EnumValues (rendered as "model" in JSON)
//	modelName (model):   ModelType, Model
//	propertyName:        ModelType, Model, ModelName, Property
//	parameterName:       Service, ServiceName, Operation, OperationName, Parameters
//	operationName:       Service, ServiceName, Operation
//	serviceName:         Service
type Details struct {
	ModelType     ModelType                   `json:"modelType,omitempty"`
	Model         spec.ModelDefinition        `json:"model,omitempty"`
	EnumValues    []string                    `json:"-"`
	ModelName     string                      `json:"modelName,omitempty"`
	Property      *spec.Property              `json:"property,omitempty"`
	Service       spec.ServiceDefinition      `json:"service,omitempty"`
	ServiceName   string                      `json:"serviceName,omitempty"`
	Operation     *spec.OperationDefinition   `json:"operation,omitempty"`
	OperationName string                      `json:"operationName,omitempty"`
	Parameters    []*spec.ParameterDefinition `json:"parameters,omitempty"`
}

// MarshalJSON renders the value list of an enum under "model", the shape
// model filters receive as well.
func (d Details) MarshalJSON() ([]byte, error) {
	type plain Details
	if d.ModelType != ModelEnum {
		return json.Marshal(plain(d))
	}
	return json.Marshal(struct {
		plain
		Model []string `json:"model"`
	}{plain: plain(d), Model: d.EnumValues})
}

// Transform is one step of a chain: either Named or Custom.
type Transform interface {
	Apply(name string, details Details) (string, error)
	String() string
}

// Func is the signature of a custom transform.
type Func func(name string, details Details) (string, error)

// Named is a built-in transform with its arguments, compiled at
// configuration time.
type Named struct {
	Kind Kind
	Args []string
	fn   nameFunc
}

// NewNamed validates kind and args and compiles the transform.
func NewNamed(kind Kind, args ...string) (Named, error) {
	fn, err := compileNamed(kind, args)
	if err != nil {
		return Named{}, err
	}
	return Named{Kind: kind, Args: args, fn: fn}, nil
}

func (n Named) Apply(name string, _ Details) (string, error) {
	if n.fn == nil {
		return "", spec.Errorf(spec.TransformConfig, "transform %q was not compiled; build it with NewNamed or ParseSpec", n.Kind)
	}
	out, err := n.fn(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", n, err)
	}
	return out, nil
}

func (n Named) String() string {
	if len(n.Args) == 0 {
		return string(n.Kind)
	}
	return string(n.Kind) + ":" + strings.Join(n.Args, ":")
}

// Custom wraps a function. Label names it in errors and listings.
type Custom struct {
	Label string
	Fn    Func
}

func (c Custom) Apply(name string, details Details) (string, error) {
	if c.Fn == nil {
		return "", spec.Errorf(spec.TransformConfig, "custom transform %q has no function", c.Label)
	}
	return c.Fn(name, details)
}

func (c Custom) String() string {
	if c.Label == "" {
		return "custom"
	}
	return c.Label
}

// ParseSpec parses "name[:arg1:arg2...]". Parts are trimmed.
func ParseSpec(s string) (Named, error) {
	parts := strings.Split(s, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return Named{}, spec.Errorf(spec.TransformConfig, "empty transform in %q", s)
	}
	return NewNamed(Kind(parts[0]), parts[1:]...)
}

// Chain is an ordered list of transforms; each output feeds the next.
type Chain []Transform

// ParseChain parses a list of "name[:args]" entries.
func ParseChain(specs ...string) (Chain, error) {
	chain := make(Chain, 0, len(specs))
	for _, s := range specs {
		t, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		chain = append(chain, t)
	}
	return chain, nil
}

// MustChain is ParseChain for static configuration; it panics on error.
func MustChain(specs ...string) Chain {
	c, err := ParseChain(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Apply runs the chain over name.
func (c Chain) Apply(name string, details Details) (string, error) {
	out := name
	for _, t := range c {
		next, err := t.Apply(out, details)
		if err != nil {
			return "", err
		}
		out = next
	}
	return out, nil
}

// Transforms maps targets to chains. A missing target leaves names unchanged.
type Transforms map[Target]Chain

// Apply transforms name with the chain configured for target.
func (ts Transforms) Apply(target Target, name string, details Details) (string, error) {
	chain, ok := ts[target]
	if !ok || len(chain) == 0 {
		return name, nil
	}
	out, err := chain.Apply(name, details)
	if err != nil {
		return "", fmt.Errorf("%s transform of %q: %w", target, name, err)
	}
	return out, nil
}
