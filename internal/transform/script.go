package transform

import (
	"fmt"

	"github.com/mark3labs/swagen/internal/script"
	"github.com/mark3labs/swagen/internal/spec"
)

// NewScript compiles a JavaScript function into a Custom transform. The
// function receives (name, details) with details in its JSON form and must
// return the new name.
func NewScript(label, src string) (Custom, error) {
	fn, err := script.Compile(label, src)
	if err != nil {
		return Custom{}, &spec.SpecError{Code: spec.TransformConfig, Message: err.Error(), Cause: err}
	}
	return scriptTransform(fn), nil
}

// NewScriptFile is NewScript for a file on disk.
func NewScriptFile(path string) (Custom, error) {
	fn, err := script.CompileFile(path)
	if err != nil {
		return Custom{}, &spec.SpecError{Code: spec.TransformConfig, Message: err.Error(), Location: path, Cause: err}
	}
	return scriptTransform(fn), nil
}

func scriptTransform(fn *script.Function) Custom {
	return Custom{
		Label: "script:" + fn.Label(),
		Fn: func(name string, details Details) (string, error) {
			out, err := fn.CallString(name, details)
			if err != nil {
				return "", fmt.Errorf("transform %s: %w", fn.Label(), err)
			}
			return out, nil
		},
	}
}
