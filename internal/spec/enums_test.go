package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidate(values ...string) *DataType { return &DataType{values: values} }

func TestEnumRegistry_DedupByOrderedValues(t *testing.T) {
	r := NewEnumRegistry()

	a := candidate("x", "y")
	r.Register(a, "status_Pet")
	assert.Equal(t, "status_Pet", a.Enum)
	assert.Nil(t, a.values)

	b := candidate("x", "y")
	r.Register(b, "find_status")
	assert.Equal(t, "status_Pet", b.Enum, "identical values reuse the first enum")

	c := candidate("y", "x")
	r.Register(c, "order_status")
	assert.Equal(t, "order_status", c.Enum, "order matters")

	assert.Equal(t, []string{"status_Pet", "order_status"}, r.Names())
	assert.Equal(t, map[string][]string{
		"status_Pet":   {"x", "y"},
		"order_status": {"y", "x"},
	}, r.Enums())
}

func TestEnumRegistry_IgnoresNonCandidates(t *testing.T) {
	r := NewEnumRegistry()
	dt := &DataType{Primitive: String}
	r.Register(dt, "ignored")
	r.Register(nil, "ignored")
	assert.Empty(t, dt.Enum)
	assert.Empty(t, r.Enums())
}

func TestEnumRegistry_SameNameDifferentValuesOverwrites(t *testing.T) {
	r := NewEnumRegistry()
	r.Register(candidate("a"), "dup")
	second := candidate("b")
	r.Register(second, "dup")
	assert.Equal(t, "dup", second.Enum)
	assert.Equal(t, []string{"b"}, r.Enums()["dup"])
	assert.Equal(t, []string{"dup"}, r.Names())
}
