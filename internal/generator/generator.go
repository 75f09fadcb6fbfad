// Package generator defines the contract between swagen and the code
// generators, and the registry that resolves a profile's generator and mode.
package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// Mode is one way a generator can render a Definition.
type Mode interface {
	Name() string
	Description() string
	Language() string
	// Extension is the file extension of the output, without the dot.
	Extension() string
	// DefaultTransforms apply to every target the profile leaves unset.
	DefaultTransforms() transform.Transforms
	ValidateProfile(p *profile.Profile) error
	Generate(def *spec.Definition, p *profile.Profile) (string, error)
}

// ErrInvalidProfile is matched by errors returned from ValidateProfile.
var ErrInvalidProfile = errors.New("invalid profile for generator")

// ProfileErrorf formats a ValidateProfile error.
func ProfileErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProfile, fmt.Sprintf(format, args...))
}

// Generate checks the data type invariant of def, then renders it with mode.
func Generate(mode Mode, def *spec.Definition, p *profile.Profile) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}
	return mode.Generate(def, p)
}

// Registry maps generator names to their modes. The first registered mode
// of a generator is its default.
type Registry struct {
	names []string
	modes map[string][]Mode
}

func NewRegistry() *Registry {
	return &Registry{modes: map[string][]Mode{}}
}

// Register adds modes to a generator. Names are case-insensitive.
func (r *Registry) Register(generator string, modes ...Mode) {
	key := strings.ToLower(generator)
	if _, ok := r.modes[key]; !ok {
		r.names = append(r.names, key)
	}
	r.modes[key] = append(r.modes[key], modes...)
}

// Generators returns the registered generator names in sorted order.
func (r *Registry) Generators() []string {
	out := append([]string(nil), r.names...)
	sort.Strings(out)
	return out
}

// Modes returns the modes of a generator.
func (r *Registry) Modes(generator string) ([]Mode, error) {
	modes, ok := r.modes[strings.ToLower(generator)]
	if !ok || len(modes) == 0 {
		return nil, fmt.Errorf("unknown generator %q (available: %s)", generator, strings.Join(r.Generators(), ", "))
	}
	return modes, nil
}

// Mode resolves a generator mode. An empty mode selects the default.
func (r *Registry) Mode(generator, mode string) (Mode, error) {
	modes, err := r.Modes(generator)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		return modes[0], nil
	}
	names := make([]string, 0, len(modes))
	for _, m := range modes {
		if strings.EqualFold(m.Name(), mode) {
			return m, nil
		}
		names = append(names, m.Name())
	}
	return nil, fmt.Errorf("generator %q has no mode %q (available: %s)", generator, mode, strings.Join(names, ", "))
}

// MergeTransforms returns the profile transforms with the mode defaults
// filling in unset targets.
func MergeTransforms(defaults, configured transform.Transforms) transform.Transforms {
	out := transform.Transforms{}
	for target, chain := range defaults {
		out[target] = chain
	}
	for target, chain := range configured {
		out[target] = chain
	}
	return out
}
