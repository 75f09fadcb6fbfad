package spec

import "strings"

// EnumRegistry deduplicates enums by their ordered value list. Each parse
// owns a fresh registry.
type EnumRegistry struct {
	order  []string
	hashes map[string]string // name -> value hash
	values map[string][]string
}

func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{hashes: map[string]string{}, values: map[string][]string{}}
}

// Register names an enum-candidate. If an enum with the same ordered values
// exists, dt points at it; otherwise a new enum is registered under
// recommended. Non-candidates are left untouched.
func (r *EnumRegistry) Register(dt *DataType, recommended string) {
	if dt == nil || dt.values == nil {
		return
	}
	hash := strings.Join(dt.values, ",")
	for _, name := range r.order {
		if r.hashes[name] == hash {
			dt.Enum = name
			dt.values = nil
			return
		}
	}
	if _, exists := r.values[recommended]; !exists {
		r.order = append(r.order, recommended)
	}
	r.hashes[recommended] = hash
	r.values[recommended] = dt.values
	dt.Enum = recommended
	dt.values = nil
}

// Enums returns the registered enums keyed by name.
func (r *EnumRegistry) Enums() map[string][]string {
	out := make(map[string][]string, len(r.values))
	for name, vals := range r.values {
		out[name] = vals
	}
	return out
}

// Names returns enum names in registration order.
func (r *EnumRegistry) Names() []string {
	return append([]string(nil), r.order...)
}
