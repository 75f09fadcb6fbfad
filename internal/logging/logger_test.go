package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewText_LevelThreshold(t *testing.T) {
	var quiet bytes.Buffer
	l := NewText(&quiet, false)
	l.Debug("hidden")
	l.Warn("shown", "model", "Pet")
	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")
	assert.Contains(t, quiet.String(), "model=Pet")

	var loud bytes.Buffer
	NewText(&loud, true).With("profile", "api").Debug("visible")
	assert.Contains(t, loud.String(), "visible")
	assert.Contains(t, loud.String(), "profile=api")
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, NopLogger{}, OrNop(nil))
	l := NewSlogAdapter(nil)
	assert.Same(t, l, OrNop(l))
}
