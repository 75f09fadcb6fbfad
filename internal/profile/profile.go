// Package profile loads and saves swagen configuration files. A
// configuration is an ordered set of named profiles; each profile names an
// input document, a generator and the filters and transforms to apply.
package profile

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Profile is one generation target.
type Profile struct {
	File            string                   `json:"file,omitempty"`
	URL             string                   `json:"url,omitempty"`
	Output          string                   `json:"output,omitempty"`
	Generator       string                   `json:"generator,omitempty"`
	Mode            string                   `json:"mode,omitempty"`
	Skip            bool                     `json:"skip,omitempty"`
	ConvertOpenAPI3 bool                     `json:"convertOpenAPI3,omitempty"`
	Debug           Debug                    `json:"debug,omitzero"`
	Filters         *Filters                 `json:"filters,omitempty"`
	Transforms      map[string]TransformList `json:"transforms,omitempty"`
	Options         map[string]any           `json:"options,omitempty"`
}

type Debug struct {
	// Definition is a path the parsed, filtered and transformed Definition
	// is written to as JSON.
	Definition string `json:"definition,omitempty"`
}

// Filters holds the raw service and model filter entries. Each entry is a
// glob pattern, a list of patterns, or an object with one of "patterns",
// "script" or "scriptFile"; anything else disables filtering.
type Filters struct {
	Service any `json:"service,omitempty"`
	Model   any `json:"model,omitempty"`
}

// Source returns the file path or URL of the input document.
func (p *Profile) Source() string {
	if p.URL != "" {
		return p.URL
	}
	return p.File
}

// Option returns the generator option key as a trimmed string.
func (p *Profile) Option(key string) string {
	if p.Options == nil {
		return ""
	}
	switch v := p.Options[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

var reservedLanguage = regexp.MustCompile(`(?i)^[\w-]+-language$`)

// Verify checks the fields every profile needs.
func (p *Profile) Verify(name string) error {
	switch {
	case p.File == "" && p.URL == "":
		return fmt.Errorf("[%s] must specify a file or url in the configuration", name)
	case p.File != "" && p.URL != "":
		return fmt.Errorf("[%s] specify either a file or a url, not both", name)
	case p.Output == "":
		return fmt.Errorf("[%s] must specify an output file path in the configuration", name)
	case p.Generator == "":
		return fmt.Errorf("[%s] must specify a generator in the configuration", name)
	case strings.EqualFold(p.Generator, "core"):
		return fmt.Errorf("[%s] invalid generator %s: this name is reserved", name, p.Generator)
	case reservedLanguage.MatchString(p.Generator):
		return fmt.Errorf("[%s] invalid generator %s: the -language suffix is reserved for language helper packages", name, p.Generator)
	}
	return nil
}

// TransformEntry is one step of a configured chain: a built-in spec such
// as "prefix:I", or an inline or file script.
type TransformEntry struct {
	Spec       string
	Script     string
	ScriptFile string
}

type scriptEntry struct {
	Script     string `json:"script,omitempty"`
	ScriptFile string `json:"scriptFile,omitempty"`
}

func (e TransformEntry) MarshalJSON() ([]byte, error) {
	if e.Script == "" && e.ScriptFile == "" {
		return json.Marshal(e.Spec)
	}
	return json.Marshal(scriptEntry{Script: e.Script, ScriptFile: e.ScriptFile})
}

func (e *TransformEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = TransformEntry{Spec: s}
		return nil
	}
	var obj scriptEntry
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("transform entry must be a string or an object with script or scriptFile: %w", err)
	}
	if (obj.Script == "") == (obj.ScriptFile == "") {
		return fmt.Errorf("transform entry must set exactly one of script or scriptFile")
	}
	*e = TransformEntry{Script: obj.Script, ScriptFile: obj.ScriptFile}
	return nil
}

// TransformList accepts a single entry or a list of entries.
type TransformList []TransformEntry

func (l TransformList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]TransformEntry(l))
}

func (l *TransformList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var entries []TransformEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		*l = entries
		return nil
	}
	var entry TransformEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}
	*l = TransformList{entry}
	return nil
}
