// Package builtin wires the generators shipped with swagen into a Registry.
package builtin

import (
	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/generator/golang"
	"github.com/mark3labs/swagen/internal/generator/python"
	"github.com/mark3labs/swagen/internal/generator/typescript"
)

// Registry returns a registry holding every built-in generator.
func Registry() *generator.Registry {
	r := generator.NewRegistry()
	r.Register("typescript", typescript.Fetch{})
	r.Register("go", golang.NetHTTP{})
	r.Register("python", python.Requests{})
	return r
}
