// Package script evaluates user-supplied JavaScript functions with goja.
// Profiles use it for custom transforms and filters.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// DefaultTimeout bounds a single call.
const DefaultTimeout = 2 * time.Second

var ErrTimeout = errors.New("script timed out")

// Function is a compiled JavaScript function expression such as
// "(name, details) => name.toUpperCase()". Calls are serialized because a
// goja runtime is not safe for concurrent use.
type Function struct {
	label   string
	timeout time.Duration

	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

// Option configures a Function.
type Option func(*Function)

// WithTimeout overrides DefaultTimeout. Non-positive values disable the limit.
func WithTimeout(d time.Duration) Option {
	return func(f *Function) { f.timeout = d }
}

// Compile evaluates src and checks that it yields a function.
func Compile(label, src string, opts ...Option) (*Function, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("script %s: empty source", label)
	}
	f := &Function{label: label, timeout: DefaultTimeout, vm: goja.New()}
	for _, opt := range opts {
		opt(f)
	}
	value, err := f.vm.RunScript(label, "("+src+")")
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", label, err)
	}
	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, fmt.Errorf("script %s: source does not evaluate to a function", label)
	}
	f.fn = fn
	return f, nil
}

// CompileFile reads path and compiles its contents.
func CompileFile(path string, opts ...Option) (*Function, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Compile(path, string(data), opts...)
}

func (f *Function) Label() string { return f.label }

// Call invokes the function. Arguments are converted to plain JSON values
// first so scripts see the same field names as the Definition JSON.
func (f *Function) Call(args ...any) (goja.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make([]goja.Value, len(args))
	for i, arg := range args {
		plain, err := Plain(arg)
		if err != nil {
			return nil, fmt.Errorf("script %s: argument %d: %w", f.label, i+1, err)
		}
		values[i] = f.vm.ToValue(plain)
	}

	if f.timeout > 0 {
		timer := time.AfterFunc(f.timeout, func() { f.vm.Interrupt(ErrTimeout) })
		defer timer.Stop()
	}
	result, err := f.fn(goja.Undefined(), values...)
	f.vm.ClearInterrupt()
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("script %s: %w", f.label, ErrTimeout)
		}
		return nil, fmt.Errorf("script %s: %w", f.label, err)
	}
	return result, nil
}

// CallString invokes the function and requires a string result.
func (f *Function) CallString(args ...any) (string, error) {
	result, err := f.Call(args...)
	if err != nil {
		return "", err
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return "", fmt.Errorf("script %s: returned no value", f.label)
	}
	s, ok := result.Export().(string)
	if !ok {
		return "", fmt.Errorf("script %s: returned %T, want string", f.label, result.Export())
	}
	return s, nil
}

// CallBool invokes the function and converts the result with JavaScript
// truthiness.
func (f *Function) CallBool(args ...any) (bool, error) {
	result, err := f.Call(args...)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	return result.ToBoolean(), nil
}

// Plain converts v to maps, slices and scalars through its JSON encoding.
func Plain(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, int, int64, float64:
		return v, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
