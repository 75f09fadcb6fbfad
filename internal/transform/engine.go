package transform

import (
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/spec"
)

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger routes collision warnings for operations and services to l.
func WithLogger(l logging.Logger) Option {
	return func(t *Transformer) { t.logger = logging.OrNop(l) }
}

// Transformer renames the entities of a Definition in two passes: Plan
// computes every old-to-new mapping and rejects collisions, Apply rebuilds
// the Definition through those mappings.
type Transformer struct {
	transforms Transforms
	logger     logging.Logger
}

func New(transforms Transforms, opts ...Option) *Transformer {
	t := &Transformer{transforms: transforms, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OperationKey identifies an operation by its original names.
type OperationKey struct {
	Service   string
	Operation string
}

// Plan holds the renames computed for one Definition. Maps only contain
// names that change, except Parameters which lists the new name of every
// parameter by position.
type Plan struct {
	Enums      map[string]string
	Models     map[string]string
	Properties map[string]map[string]string // original model name -> property renames
	Parameters map[OperationKey][]string
	Operations map[string]map[string]string // original service name -> operation renames
	Services   map[string]string
}

func newPlan() *Plan {
	return &Plan{
		Enums:      map[string]string{},
		Models:     map[string]string{},
		Properties: map[string]map[string]string{},
		Parameters: map[OperationKey][]string{},
		Operations: map[string]map[string]string{},
		Services:   map[string]string{},
	}
}

// TransformDefinition renames def in place. On error def is unchanged.
func (t *Transformer) TransformDefinition(def *spec.Definition) error {
	plan, err := t.Plan(def)
	if err != nil {
		return err
	}
	plan.Apply(def)
	return nil
}

// Plan computes the renames for def without modifying it. Enum, model and
// property collisions are errors; operation and service collisions are
// logged and the last one in sorted order wins.
func (t *Transformer) Plan(def *spec.Definition) (*Plan, error) {
	plan := newPlan()

	enumRenames := newRenamer("enum", keySet(def.Enums))
	for _, name := range spec.SortedKeys(def.Enums) {
		next, err := t.transforms.Apply(ModelName, name, Details{ModelType: ModelEnum, EnumValues: def.Enums[name]})
		if err != nil {
			return nil, err
		}
		if err := enumRenames.claim(name, next, ""); err != nil {
			return nil, err
		}
	}
	plan.Enums = enumRenames.renames

	modelRenames := newRenamer("model", keySet(def.Models))
	for _, name := range spec.SortedKeys(def.Models) {
		next, err := t.transforms.Apply(ModelName, name, Details{ModelType: ModelComplex, Model: def.Models[name]})
		if err != nil {
			return nil, err
		}
		if err := modelRenames.claim(name, next, ""); err != nil {
			return nil, err
		}
	}
	plan.Models = modelRenames.renames

	for _, modelName := range spec.SortedKeys(def.Models) {
		model := def.Models[modelName]
		newModelName := renamed(plan.Models, modelName)
		props := newRenamer("property", keySet(model))
		for _, propName := range spec.SortedKeys(model) {
			prop := *model[propName]
			prop.DataType = plan.repoint(prop.DataType)
			next, err := t.transforms.Apply(PropertyName, propName, Details{
				ModelType: ModelComplex,
				Model:     model,
				ModelName: newModelName,
				Property:  &prop,
			})
			if err != nil {
				return nil, err
			}
			if err := props.claim(propName, next, newModelName+"."); err != nil {
				return nil, err
			}
		}
		if len(props.renames) > 0 {
			plan.Properties[modelName] = props.renames
		}
	}

	serviceClaims := map[string]string{}
	for _, serviceName := range spec.SortedKeys(def.Services) {
		service := def.Services[serviceName]
		opClaims := map[string]string{}
		for _, opName := range spec.SortedKeys(service) {
			op := service[opName]
			params := make([]string, len(op.Parameters))
			for i, p := range op.Parameters {
				next, err := t.transforms.Apply(ParameterName, p.Name, Details{
					Service:       service,
					ServiceName:   serviceName,
					Operation:     op,
					OperationName: opName,
					Parameters:    op.Parameters,
				})
				if err != nil {
					return nil, err
				}
				params[i] = next
			}
			plan.Parameters[OperationKey{Service: serviceName, Operation: opName}] = params

			next, err := t.transforms.Apply(OperationName, opName, Details{
				Service:     service,
				ServiceName: serviceName,
				Operation:   op,
			})
			if err != nil {
				return nil, err
			}
			if prev, taken := opClaims[next]; taken {
				t.logger.Warn("operation rename collides, keeping the last one",
					"service", serviceName, "name", next, "first", prev, "last", opName)
			}
			opClaims[next] = opName
			if next != opName {
				if plan.Operations[serviceName] == nil {
					plan.Operations[serviceName] = map[string]string{}
				}
				plan.Operations[serviceName][opName] = next
			}
		}

		next, err := t.transforms.Apply(ServiceName, serviceName, Details{Service: service})
		if err != nil {
			return nil, err
		}
		if prev, taken := serviceClaims[next]; taken {
			t.logger.Warn("service rename collides, keeping the last one",
				"name", next, "first", prev, "last", serviceName)
		}
		serviceClaims[next] = serviceName
		if next != serviceName {
			plan.Services[serviceName] = next
		}
	}
	return plan, nil
}

// Apply rebuilds def through the plan's mappings.
func (p *Plan) Apply(def *spec.Definition) {
	enums := make(map[string][]string, len(def.Enums))
	for _, name := range spec.SortedKeys(def.Enums) {
		enums[renamed(p.Enums, name)] = def.Enums[name]
	}

	models := make(map[string]spec.ModelDefinition, len(def.Models))
	for _, modelName := range spec.SortedKeys(def.Models) {
		model := def.Models[modelName]
		propRenames := p.Properties[modelName]
		out := make(spec.ModelDefinition, len(model))
		for _, propName := range spec.SortedKeys(model) {
			prop := *model[propName]
			prop.DataType = p.repoint(prop.DataType)
			next := renamed(propRenames, propName)
			if next != propName && prop.OriginalName == "" {
				prop.OriginalName = propName
			}
			out[next] = &prop
		}
		models[renamed(p.Models, modelName)] = out
	}

	services := make(map[string]spec.ServiceDefinition, len(def.Services))
	for _, serviceName := range spec.SortedKeys(def.Services) {
		service := def.Services[serviceName]
		out := make(spec.ServiceDefinition, len(service))
		for _, opName := range spec.SortedKeys(service) {
			op := *service[opName]
			names := p.Parameters[OperationKey{Service: serviceName, Operation: opName}]
			params := make([]*spec.ParameterDefinition, len(op.Parameters))
			for i, param := range op.Parameters {
				cp := *param
				if i < len(names) && names[i] != cp.Name {
					if cp.OriginalName == "" {
						cp.OriginalName = cp.Name
					}
					cp.Name = names[i]
				}
				if cp.DataType != nil {
					dt := p.repoint(*cp.DataType)
					cp.DataType = &dt
				}
				params[i] = &cp
			}
			op.Parameters = params
			if op.Responses != nil {
				responses := make(map[string]*spec.ResponseDefinition, len(op.Responses))
				for code, resp := range op.Responses {
					cp := &spec.ResponseDefinition{}
					if resp != nil && resp.DataType != nil {
						dt := p.repoint(*resp.DataType)
						cp.DataType = &dt
					}
					responses[code] = cp
				}
				op.Responses = responses
			}
			out[renamed(p.Operations[serviceName], opName)] = &op
		}
		services[renamed(p.Services, serviceName)] = out
	}

	def.Enums = enums
	def.Models = models
	def.Services = services
}

// repoint follows enum and model renames. References to names that were
// not renamed, including dangling ones, are left as they are.
func (p *Plan) repoint(dt spec.DataType) spec.DataType {
	if dt.Enum != "" {
		dt.Enum = renamed(p.Enums, dt.Enum)
	} else if dt.Complex != "" {
		dt.Complex = renamed(p.Models, dt.Complex)
	}
	return dt
}

func renamed(m map[string]string, name string) string {
	if next, ok := m[name]; ok {
		return next
	}
	return name
}

// renamer tracks renames in one namespace and rejects collisions with
// existing entries and with other renames.
type renamer struct {
	namespace string
	existing  map[string]bool
	claimed   map[string]string
	renames   map[string]string
}

func newRenamer(namespace string, existing map[string]bool) *renamer {
	return &renamer{namespace: namespace, existing: existing, claimed: map[string]string{}, renames: map[string]string{}}
}

func (r *renamer) claim(old, next, scope string) error {
	if next == old {
		return nil
	}
	if next == "" {
		return spec.Errorf(spec.TransformConfig, "cannot transform %s named '%s%s': the transformed name is empty", r.namespace, scope, old)
	}
	if r.existing[next] {
		return spec.Errorf(spec.NameCollision, "cannot transform %s named '%s%s': the transformed name '%s%s' already exists", r.namespace, scope, old, scope, next)
	}
	if prev, ok := r.claimed[next]; ok {
		return spec.Errorf(spec.NameCollision, "cannot transform %s named '%s%s': '%s%s' is also transformed to '%s%s'", r.namespace, scope, old, scope, prev, scope, next)
	}
	r.claimed[next] = old
	r.renames[old] = next
	return nil
}

func keySet[M ~map[string]V, V any](m M) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}
