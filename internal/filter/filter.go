// Package filter removes services, models and enums from a Definition
// before it is renamed and generated.
package filter

import (
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// ServiceDetails is the context of a service filter call.
type ServiceDetails struct {
	Service spec.ServiceDefinition `json:"service"`
}

// ModelDetails is the context of a model filter call. Model is set for
// complex models, EnumValues for enums.
type ModelDetails struct {
	ModelType  transform.ModelType  `json:"modelType"`
	Model      spec.ModelDefinition `json:"model,omitempty"`
	EnumValues []string             `json:"enumValues,omitempty"`
}

// ServiceFunc reports whether a service is kept.
type ServiceFunc func(name string, details ServiceDetails) (bool, error)

// ModelFunc reports whether a model or enum is kept.
type ModelFunc func(name string, details ModelDetails) (bool, error)

// Filters holds the configured predicates. A nil predicate keeps everything.
type Filters struct {
	Service ServiceFunc
	Model   ModelFunc
}

// Empty reports whether no predicate is configured.
func (f Filters) Empty() bool { return f.Service == nil && f.Model == nil }

type Option func(*Filterer)

func WithLogger(l logging.Logger) Option {
	return func(f *Filterer) { f.logger = logging.OrNop(l) }
}

// Filterer applies Filters to a Definition.
type Filterer struct {
	filters Filters
	logger  logging.Logger
}

func New(filters Filters, opts ...Option) *Filterer {
	f := &Filterer{filters: filters, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FilterDefinition deletes every service, model and enum rejected by the
// predicates. Removals do not cascade: references to a removed model or
// enum are left in place.
func (f *Filterer) FilterDefinition(def *spec.Definition) error {
	if f.filters.Empty() {
		return nil
	}

	if f.filters.Service != nil {
		for _, name := range spec.SortedKeys(def.Services) {
			keep, err := f.filters.Service(name, ServiceDetails{Service: def.Services[name]})
			if err != nil {
				return err
			}
			if !keep {
				f.logger.Debug("filtered out service", "service", name)
				delete(def.Services, name)
			}
		}
	}

	if f.filters.Model != nil {
		for _, name := range spec.SortedKeys(def.Models) {
			keep, err := f.filters.Model(name, ModelDetails{ModelType: transform.ModelComplex, Model: def.Models[name]})
			if err != nil {
				return err
			}
			if !keep {
				f.logger.Debug("filtered out model", "model", name)
				delete(def.Models, name)
			}
		}
		for _, name := range spec.SortedKeys(def.Enums) {
			keep, err := f.filters.Model(name, ModelDetails{ModelType: transform.ModelEnum, EnumValues: def.Enums[name]})
			if err != nil {
				return err
			}
			if !keep {
				f.logger.Debug("filtered out enum", "enum", name)
				delete(def.Enums, name)
			}
		}
	}
	return nil
}
