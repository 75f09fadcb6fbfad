package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/mark3labs/swagen/internal/naming"
	"github.com/mark3labs/swagen/internal/spec"
)

// Kind is a built-in transform.
type Kind string

const (
	CamelCase    Kind = "camel-case"
	PascalCase   Kind = "pascal-case"
	SnakeCase    Kind = "snake-case"
	KebabCase    Kind = "kebab-case"
	Prefix       Kind = "prefix"
	Suffix       Kind = "suffix"
	Replace      Kind = "replace"
	RemovePrefix Kind = "remove-prefix"
	RemoveSuffix Kind = "remove-suffix"
)

// Kinds lists the built-in transforms in documentation order.
var Kinds = []Kind{CamelCase, PascalCase, SnakeCase, KebabCase, Prefix, Suffix, Replace, RemovePrefix, RemoveSuffix}

type nameFunc func(name string) (string, error)

type builtin struct {
	usage   string
	minArgs int
	maxArgs int
	compile func(args []string) (nameFunc, error)
}

func pure(f func(string) string) func([]string) (nameFunc, error) {
	return func([]string) (nameFunc, error) {
		return func(name string) (string, error) { return f(name), nil }, nil
	}
}

// library is shared by every target.
var library = map[Kind]builtin{
	CamelCase:  {usage: "camel-case", compile: pure(naming.ToCamelCase)},
	PascalCase: {usage: "pascal-case", compile: pure(naming.ToPascalCase)},
	SnakeCase:  {usage: "snake-case", compile: pure(naming.ToSnakeCase)},
	KebabCase:  {usage: "kebab-case", compile: pure(naming.ToKebabCase)},
	Prefix: {usage: "prefix:<text>", minArgs: 1, maxArgs: 1, compile: func(args []string) (nameFunc, error) {
		return func(name string) (string, error) { return args[0] + name, nil }, nil
	}},
	Suffix: {usage: "suffix:<text>", minArgs: 1, maxArgs: 1, compile: func(args []string) (nameFunc, error) {
		return func(name string) (string, error) { return name + args[0], nil }, nil
	}},
	Replace: {usage: "replace:<pattern>:<replacement>", minArgs: 2, maxArgs: 2, compile: compileReplace},
	RemovePrefix: {usage: "remove-prefix:<a,b,...>", minArgs: 1, maxArgs: 1, compile: func(args []string) (nameFunc, error) {
		candidates := affixes(args[0])
		return func(name string) (string, error) {
			for _, c := range candidates {
				if len(name) >= len(c) && strings.EqualFold(name[:len(c)], c) {
					return name[len(c):], nil
				}
			}
			return name, nil
		}, nil
	}},
	RemoveSuffix: {usage: "remove-suffix:<a,b,...>", minArgs: 1, maxArgs: 1, compile: func(args []string) (nameFunc, error) {
		candidates := affixes(args[0])
		return func(name string) (string, error) {
			for _, c := range candidates {
				if len(name) >= len(c) && strings.EqualFold(name[len(name)-len(c):], c) {
					return name[:len(name)-len(c)], nil
				}
			}
			return name, nil
		}, nil
	}},
}

// Usage returns the configuration syntax of k.
func (k Kind) Usage() string { return library[k].usage }

// Valid reports whether k is a built-in transform.
func (k Kind) Valid() bool {
	_, ok := library[k]
	return ok
}

// compileReplace uses ECMAScript regex semantics with a global substitution
// so patterns behave the same as in JavaScript-based tooling.
func compileReplace(args []string) (nameFunc, error) {
	re, err := regexp2.Compile(args[0], regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", args[0], err)
	}
	replacement := args[1]
	return func(name string) (string, error) {
		return re.Replace(name, replacement, -1, -1)
	}, nil
}

// affixes lower-cases a comma list and orders it longest first.
func affixes(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func compileNamed(kind Kind, args []string) (nameFunc, error) {
	b, ok := library[kind]
	if !ok {
		return nil, spec.Errorf(spec.TransformConfig, "unknown transform %q (available: %s)", kind, kindList())
	}
	if len(args) < b.minArgs || len(args) > b.maxArgs {
		return nil, spec.Errorf(spec.TransformConfig, "transform %q takes %s, got %d argument(s); usage: %s", kind, arity(b), len(args), b.usage)
	}
	fn, err := b.compile(args)
	if err != nil {
		return nil, &spec.SpecError{Code: spec.TransformConfig, Message: fmt.Sprintf("transform %q: %v", kind, err), Cause: err}
	}
	return fn, nil
}

func arity(b builtin) string {
	switch {
	case b.maxArgs == 0:
		return "no arguments"
	case b.minArgs == b.maxArgs:
		return fmt.Sprintf("exactly %d argument(s)", b.minArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", b.minArgs, b.maxArgs)
	}
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
