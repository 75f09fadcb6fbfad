package profile

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mark3labs/swagen/internal/filter"
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/script"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// Compile turns the declarative filters and transforms of p into their
// executable forms. Script files are resolved relative to baseDir. An
// invalid filter entry disables filtering with a warning; invalid
// transforms are errors.
func (p *Profile) Compile(baseDir string, logger logging.Logger) (filter.Filters, transform.Transforms, error) {
	logger = logging.OrNop(logger)

	filters, err := p.compileFilters(baseDir)
	if err != nil {
		var invalid invalidFilter
		if !errors.As(err, &invalid) {
			return filter.Filters{}, nil, err
		}
		logger.Warn("filtering disabled", "reason", invalid.Error())
		filters = filter.Filters{}
	}

	transforms, err := p.compileTransforms(baseDir)
	if err != nil {
		return filter.Filters{}, nil, err
	}
	return filters, transforms, nil
}

type invalidFilter struct{ msg string }

func (e invalidFilter) Error() string { return e.msg }

func (p *Profile) compileFilters(baseDir string) (filter.Filters, error) {
	var out filter.Filters
	if p.Filters == nil {
		return out, nil
	}
	if p.Filters.Service != nil {
		patterns, fn, err := filterEntry("service", p.Filters.Service, baseDir)
		if err != nil {
			return out, err
		}
		if fn != nil {
			out.Service = filter.ServiceScript(fn)
		} else if out.Service, err = filter.ServicePatterns(patterns...); err != nil {
			return out, invalidFilter{msg: fmt.Sprintf("service filter: %v", err)}
		}
	}
	if p.Filters.Model != nil {
		patterns, fn, err := filterEntry("model", p.Filters.Model, baseDir)
		if err != nil {
			return out, err
		}
		if fn != nil {
			out.Model = filter.ModelScript(fn)
		} else if out.Model, err = filter.ModelPatterns(patterns...); err != nil {
			return out, invalidFilter{msg: fmt.Sprintf("model filter: %v", err)}
		}
	}
	return out, nil
}

// filterEntry returns either the glob patterns or the compiled script of a
// raw filter entry.
func filterEntry(kind string, v any, baseDir string) ([]string, *script.Function, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil, nil
	case []any:
		patterns, ok := stringList(val)
		if !ok {
			return nil, nil, invalidFilter{msg: fmt.Sprintf("%s filter: list entries must be strings", kind)}
		}
		return patterns, nil, nil
	case map[string]any:
		if len(val) != 1 {
			return nil, nil, invalidFilter{msg: fmt.Sprintf("%s filter: expected exactly one of patterns, script or scriptFile", kind)}
		}
		if raw, ok := val["patterns"]; ok {
			list, isList := raw.([]any)
			patterns, ok := stringList(list)
			if !isList || !ok {
				return nil, nil, invalidFilter{msg: fmt.Sprintf("%s filter: patterns must be a list of strings", kind)}
			}
			return patterns, nil, nil
		}
		if src, ok := val["script"].(string); ok {
			fn, err := script.Compile(kind+" filter", src)
			return nil, fn, err
		}
		if path, ok := val["scriptFile"].(string); ok {
			fn, err := script.CompileFile(resolve(baseDir, path))
			return nil, fn, err
		}
	}
	return nil, nil, invalidFilter{msg: fmt.Sprintf("%s filter is not a pattern list or script (got %T)", kind, v)}
}

func stringList(list []any) ([]string, bool) {
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func (p *Profile) compileTransforms(baseDir string) (transform.Transforms, error) {
	out := transform.Transforms{}
	targets := make([]string, 0, len(p.Transforms))
	for k := range p.Transforms {
		targets = append(targets, k)
	}
	sort.Strings(targets)
	for _, key := range targets {
		target, err := transform.ParseTarget(key)
		if err != nil {
			return nil, err
		}
		chain := make(transform.Chain, 0, len(p.Transforms[key]))
		for _, entry := range p.Transforms[key] {
			t, err := compileEntry(entry, baseDir)
			if err != nil {
				return nil, fmt.Errorf("transforms.%s: %w", key, err)
			}
			chain = append(chain, t)
		}
		out[target] = chain
	}
	return out, nil
}

func compileEntry(entry TransformEntry, baseDir string) (transform.Transform, error) {
	switch {
	case entry.Script != "":
		return transform.NewScript("inline", entry.Script)
	case entry.ScriptFile != "":
		return transform.NewScriptFile(resolve(baseDir, entry.ScriptFile))
	case entry.Spec != "":
		return transform.ParseSpec(entry.Spec)
	default:
		return nil, spec.Errorf(spec.TransformConfig, "empty transform entry")
	}
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
