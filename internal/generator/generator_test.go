package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

type stubMode struct{ name string }

func (m stubMode) Name() string { return m.name }
func (stubMode) Description() string { return "stub" }
func (stubMode) Language() string { return "Stub" }
func (stubMode) Extension() string { return "txt" }
func (stubMode) DefaultTransforms() transform.Transforms { return nil }
func (stubMode) ValidateProfile(*profile.Profile) error { return nil }
func (m stubMode) Generate(*spec.Definition, *profile.Profile) (string, error) {
	return m.name, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("Zeta", stubMode{"one"})
	r.Register("alpha", stubMode{"first"}, stubMode{"second"})
	r.Register("zeta", stubMode{"two"})

	assert.Equal(t, []string{"alpha", "zeta"}, r.Generators())

	modes, err := r.Modes("ZETA")
	require.NoError(t, err)
	require.Len(t, modes, 2)

	m, err := r.Mode("alpha", "")
	require.NoError(t, err)
	assert.Equal(t, "first", m.Name(), "the first mode is the default")

	m, err = r.Mode("alpha", "SECOND")
	require.NoError(t, err)
	assert.Equal(t, "second", m.Name())

	_, err = r.Mode("alpha", "third")
	assert.EqualError(t, err, `generator "alpha" has no mode "third" (available: first, second)`)

	_, err = r.Modes("java")
	assert.EqualError(t, err, `unknown generator "java" (available: alpha, zeta)`)
}

func TestProfileErrorf(t *testing.T) {
	err := ProfileErrorf("missing %s", "package")
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "missing package")
}

func TestMergeTransforms(t *testing.T) {
	defaults := transform.Transforms{
		transform.ModelName:   transform.MustChain("pascal-case"),
		transform.ServiceName: transform.MustChain("pascal-case"),
	}
	configured := transform.Transforms{
		transform.ModelName:    transform.MustChain("prefix:I"),
		transform.PropertyName: transform.MustChain("snake-case"),
	}
	merged := MergeTransforms(defaults, configured)
	assert.Len(t, merged, 3)
	assert.Equal(t, configured[transform.ModelName], merged[transform.ModelName])
	assert.Equal(t, defaults[transform.ServiceName], merged[transform.ServiceName])
	assert.Equal(t, configured[transform.PropertyName], merged[transform.PropertyName])
	assert.Len(t, defaults, 2, "inputs are not modified")
}

func TestGenerateValidatesDefinition(t *testing.T) {
	def := spec.NewDefinition()
	def.Models["Pet"] = spec.ModelDefinition{"name": {DataType: spec.DataType{Primitive: spec.String}}}
	out, err := Generate(stubMode{"ok"}, def, &profile.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	def.Models["Pet"]["broken"] = &spec.Property{DataType: spec.DataType{Primitive: spec.String, Complex: "Tag"}}
	_, err = Generate(stubMode{"ok"}, def, &profile.Profile{})
	require.ErrorIs(t, err, spec.ErrTypeResolution)
	assert.Contains(t, err.Error(), "model Pet property broken")
}
