package spec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openapi2 "github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// decodeDocument turns JSON or YAML text into a Swagger 2.0 document. YAML is
// routed through a generic tree so kin-openapi's JSON decoders see the
// document exactly as they would see JSON.
func decodeDocument(ctx context.Context, data []byte, cfg parseConfig) (*openapi2.T, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, Errorf(MalformedInput, "document is empty")
	}

	var root any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, malformed(data, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, malformed(data, err)
		}
		root = normalizeYAML(root)
	}

	doc, ok := root.(map[string]any)
	if !ok {
		return nil, Errorf(MalformedInput, "document root must be an object, got %T", root)
	}
	modified := preprocessV2ForCompatibility(doc)
	if modified {
		cfg.logger.Debug("rewrote schema type lists for compatibility")
	}

	if v, ok := doc["openapi"].(string); ok && strings.HasPrefix(strings.TrimSpace(v), "3.") {
		if !cfg.downconvert {
			return nil, Errorf(MalformedInput, "OpenAPI %s documents are not supported; only Swagger 2.0 input is accepted", v)
		}
		return downconvert(ctx, doc, cfg)
	}
	if v, ok := doc["swagger"].(string); !ok || strings.TrimSpace(v) != "2.0" {
		cfg.logger.Warn("document does not declare swagger: \"2.0\"; parsing anyway")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, malformed(nil, err)
	}
	var v2 openapi2.T
	if err := json.Unmarshal(raw, &v2); err != nil {
		return nil, malformed(raw, err)
	}
	return &v2, nil
}

func downconvert(ctx context.Context, doc map[string]any, cfg parseConfig) (*openapi2.T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, malformed(nil, err)
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	v3, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, &SpecError{Code: MalformedInput, Message: fmt.Sprintf("load OpenAPI 3 document: %v", err), Cause: err}
	}
	if v3.Components == nil {
		v3.Components = &openapi3.Components{}
	}
	if v3.Info == nil {
		v3.Info = &openapi3.Info{}
	}
	v2, err := openapi2conv.FromV3(v3)
	if err != nil {
		return nil, &SpecError{Code: ConversionError, Message: fmt.Sprintf("convert v3→v2: %v", err), Cause: err}
	}
	cfg.logger.Info("converted OpenAPI 3 document to Swagger 2.0")
	return v2, nil
}

// normalizeYAML converts map[any]any nodes, which yaml.v3 produces for keys
// such as unquoted status codes, into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}

// preprocessV2ForCompatibility rewrites constructs kin-openapi cannot
// decode. A schema "type" given as a list (["string", "null"]) collapses to
// its first non-null entry. It reports whether anything changed.
func preprocessV2ForCompatibility(node any) bool {
	modified := false
	switch t := node.(type) {
	case map[string]any:
		if list, ok := t["type"].([]any); ok {
			t["type"] = firstNonNullType(list)
			modified = true
		}
		for _, val := range t {
			if preprocessV2ForCompatibility(val) {
				modified = true
			}
		}
	case []any:
		for _, val := range t {
			if preprocessV2ForCompatibility(val) {
				modified = true
			}
		}
	}
	return modified
}

func firstNonNullType(list []any) string {
	for _, v := range list {
		if s, ok := v.(string); ok && s != "null" {
			return s
		}
	}
	return ""
}
