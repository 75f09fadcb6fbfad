package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/swagen/internal/output"
)

// Format is the encoding of a configuration file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FileNames lists the configuration files looked up in a directory, in
// order of preference.
var FileNames = []string{"swagen.yaml", "swagen.yml", "swagen.toml", "swagen.json"}

// ErrNotFound is returned by Find when a directory has no configuration.
var ErrNotFound = errors.New("no swagen configuration found")

// FormatOf infers the format from a file extension. Unknown extensions are
// treated as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".json":
		return JSON
	default:
		return YAML
	}
}

// Config is an ordered set of named profiles.
type Config struct {
	Path   string
	Format Format

	names    []string
	profiles map[string]*Profile
}

// New returns an empty configuration that will be saved to path.
func New(path string) *Config {
	return &Config{Path: path, Format: FormatOf(path), profiles: map[string]*Profile{}}
}

// Names returns profile names in file order.
func (c *Config) Names() []string { return append([]string(nil), c.names...) }

func (c *Config) Len() int { return len(c.names) }

func (c *Config) Get(name string) (*Profile, bool) {
	p, ok := c.profiles[name]
	return p, ok
}

// Set adds or replaces a profile. New profiles are appended.
func (c *Config) Set(name string, p *Profile) {
	if _, ok := c.profiles[name]; !ok {
		c.names = append(c.names, name)
	}
	c.profiles[name] = p
}

// Rename moves a profile to a new name, keeping its position.
func (c *Config) Rename(oldName, newName string) error {
	p, ok := c.profiles[oldName]
	if !ok {
		return fmt.Errorf("cannot find a profile named '%s' in the current configuration", oldName)
	}
	if _, exists := c.profiles[newName]; exists {
		return fmt.Errorf("a profile named '%s' already exists; cannot override it", newName)
	}
	for i, n := range c.names {
		if n == oldName {
			c.names[i] = newName
		}
	}
	delete(c.profiles, oldName)
	c.profiles[newName] = p
	return nil
}

func (c *Config) Remove(name string) error {
	if _, ok := c.profiles[name]; !ok {
		return fmt.Errorf("cannot find a profile named '%s' in the current configuration", name)
	}
	delete(c.profiles, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return nil
}

// Find returns the first configuration file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s); run 'swagen init' to create one", ErrNotFound, dir, strings.Join(FileNames, ", "))
}

// Load reads and decodes the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Decode parses data in the given format. Every format is reduced to
// generic values first and each profile is then decoded strictly, so
// unknown fields are rejected the same way everywhere.
func Decode(data []byte, format Format) (*Config, error) {
	var (
		names []string
		raw   map[string]any
		err   error
	)
	switch format {
	case TOML:
		names, raw, err = decodeTOML(data)
	case JSON:
		names, raw, err = decodeJSON(data)
	default:
		names, raw, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{Format: format, profiles: map[string]*Profile{}}
	for _, name := range names {
		p, err := decodeProfile(raw[name])
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		cfg.Set(name, p)
	}
	return cfg, nil
}

func decodeProfile(v any) (*Profile, error) {
	if _, ok := v.(map[string]any); !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeYAML(data []byte) ([]string, map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	raw := map[string]any{}
	if len(doc.Content) == 0 {
		return nil, raw, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("top level must be a mapping of profile names")
	}
	var names []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var v any
		if err := root.Content[i+1].Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if _, dup := raw[name]; !dup {
			names = append(names, name)
		}
		raw[name] = v
	}
	return names, raw, nil
}

func decodeJSON(data []byte) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, map[string]any{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("top level must be an object of profile names")
	}
	raw := map[string]any{}
	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name := tok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if _, dup := raw[name]; !dup {
			names = append(names, name)
		}
		raw[name] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return names, raw, nil
}

func decodeTOML(data []byte) ([]string, map[string]any, error) {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	return tomlOrder(data, raw), raw, nil
}

// tomlOrder recovers the order in which top-level keys first appear. The
// decoded map has no order of its own.
func tomlOrder(data []byte, raw map[string]any) []string {
	var names []string
	seen := map[string]bool{}
	add := func(n *unstable.Node) {
		it := n.Key()
		if !it.Next() {
			return
		}
		name := string(it.Node().Data)
		if _, ok := raw[name]; ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	p := unstable.Parser{}
	p.Reset(data)
	inTable := false
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			inTable = true
			add(e)
		case unstable.KeyValue:
			if !inTable {
				add(e)
			}
		}
	}
	// Anything the scan missed keeps a stable position at the end.
	for _, name := range sortedNames(raw) {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

// Encode serializes the configuration in its format, preserving profile order.
func (c *Config) Encode() ([]byte, error) {
	switch c.Format {
	case TOML:
		return c.encodeTOML()
	case JSON:
		return c.encodeJSON()
	default:
		return c.encodeYAML()
	}
}

// Save writes the configuration back to Path atomically.
func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("config has no path")
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	return output.WriteAtomic(c.Path, data)
}

// generic converts a profile to plain values through its JSON form so the
// YAML and TOML encoders see the same field names.
func generic(p *Profile) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Config) encodeYAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range c.names {
		v, err := generic(c.profiles[name])
		if err != nil {
			return nil, err
		}
		var value yaml.Node
		if err := value.Encode(v); err != nil {
			return nil, err
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, &value)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) encodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, name := range c.names {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(c.profiles[name], "    ", "    ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(c.names) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (c *Config) encodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	for i, name := range c.names {
		v, err := generic(c.profiles[name])
		if err != nil {
			return nil, err
		}
		data, err := toml.Marshal(map[string]any{name: v})
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func sortedNames(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
