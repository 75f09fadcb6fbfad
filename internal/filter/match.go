package filter

import (
	"fmt"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/mark3labs/swagen/internal/script"
	"github.com/mark3labs/swagen/internal/transform"
)

// Matcher selects names with glob patterns. Patterns are evaluated in
// order and the last one that matches decides; a leading "!" rejects. When
// every pattern is a rejection, names start out selected.
type Matcher struct {
	pm *patternmatcher.PatternMatcher
}

func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no patterns")
	}
	all := patterns
	onlyExclusions := true
	for _, p := range patterns {
		if !strings.HasPrefix(strings.TrimSpace(p), "!") {
			onlyExclusions = false
			break
		}
	}
	if onlyExclusions {
		all = append([]string{"*"}, patterns...)
	}
	pm, err := patternmatcher.New(all)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return &Matcher{pm: pm}, nil
}

// Match reports whether name is selected.
func (m *Matcher) Match(name string) (bool, error) {
	return m.pm.MatchesOrParentMatches(name)
}

// ServicePatterns builds a ServiceFunc from glob patterns.
func ServicePatterns(patterns ...string) (ServiceFunc, error) {
	m, err := NewMatcher(patterns)
	if err != nil {
		return nil, err
	}
	return func(name string, _ ServiceDetails) (bool, error) { return m.Match(name) }, nil
}

// ModelPatterns builds a ModelFunc from glob patterns. Enums are matched by
// the same patterns as models.
func ModelPatterns(patterns ...string) (ModelFunc, error) {
	m, err := NewMatcher(patterns)
	if err != nil {
		return nil, err
	}
	return func(name string, _ ModelDetails) (bool, error) { return m.Match(name) }, nil
}

// ServiceScript calls fn(name, {service}) and keeps the service when the
// result is truthy.
func ServiceScript(fn *script.Function) ServiceFunc {
	return func(name string, details ServiceDetails) (bool, error) {
		return fn.CallBool(name, details)
	}
}

// ModelScript calls fn(name, {modelType, model}) where model is the
// property map of a complex model or the value list of an enum.
func ModelScript(fn *script.Function) ModelFunc {
	return func(name string, details ModelDetails) (bool, error) {
		arg := map[string]any{"modelType": details.ModelType}
		if details.ModelType == transform.ModelEnum {
			arg["model"] = details.EnumValues
		} else {
			arg["model"] = details.Model
		}
		return fn.CallBool(name, arg)
	}
}
