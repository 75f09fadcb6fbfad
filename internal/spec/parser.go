package spec

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	openapi2 "github.com/getkin/kin-openapi/openapi2"

	"github.com/mark3labs/swagen/internal/logging"
)

// ParseOption configures Parse and ParseBytes.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger      logging.Logger
	downconvert bool
	location    string
}

// WithLogger routes parser diagnostics to l.
func WithLogger(l logging.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = logging.OrNop(l) }
}

// WithOpenAPI3Downconvert lets ParseBytes accept OpenAPI 3 documents by
// converting them to Swagger 2.0 first.
func WithOpenAPI3Downconvert(enabled bool) ParseOption {
	return func(c *parseConfig) { c.downconvert = enabled }
}

// WithLocation records the file path or URL of the document in errors.
func WithLocation(location string) ParseOption {
	return func(c *parseConfig) { c.location = location }
}

func newParseConfig(opts []ParseOption) parseConfig {
	cfg := parseConfig{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Parser builds a Definition from a Swagger 2.0 document.
type Parser struct {
	doc      *openapi2.T
	cfg      parseConfig
	resolver DataTypeResolver

	enums *EnumRegistry
	def   *Definition
}

func NewParser(doc *openapi2.T, opts ...ParseOption) *Parser {
	return &Parser{doc: doc, cfg: newParseConfig(opts)}
}

// Parse builds a Definition from an already-decoded document.
func Parse(doc *openapi2.T, opts ...ParseOption) (*Definition, error) {
	return NewParser(doc, opts...).Parse()
}

// ParseBytes decodes a JSON or YAML document and parses it.
func ParseBytes(data []byte, opts ...ParseOption) (*Definition, error) {
	return parseBytes(context.Background(), data, opts)
}

func parseBytes(ctx context.Context, data []byte, opts []ParseOption) (*Definition, error) {
	cfg := newParseConfig(opts)
	doc, err := decodeDocument(ctx, data, cfg)
	if err != nil {
		if se, ok := err.(*SpecError); ok && se.Location == "" {
			se.Location = cfg.location
		}
		return nil, err
	}
	return NewParser(doc, opts...).Parse()
}

// Parse runs metadata, models and services in that order. Every call
// starts from a fresh enum registry.
func (p *Parser) Parse() (*Definition, error) {
	if p.doc == nil {
		return nil, p.located(Errorf(MalformedInput, "document is empty"))
	}
	p.enums = NewEnumRegistry()
	p.def = NewDefinition()

	p.parseMetadata()
	if err := p.parseModels(); err != nil {
		return nil, p.located(err)
	}
	if err := p.parseServices(); err != nil {
		return nil, p.located(err)
	}
	p.def.Enums = p.enums.Enums()
	if err := p.def.Validate(); err != nil {
		return nil, p.located(err)
	}

	p.cfg.logger.Debug("parsed definition",
		"enumNames", p.enums.Names(),
		"models", len(p.def.Models),
		"enums", len(p.def.Enums),
		"services", len(p.def.Services))
	return p.def, nil
}

func (p *Parser) located(err error) error {
	if se, ok := err.(*SpecError); ok && se.Location == "" {
		se.Location = p.cfg.location
	}
	return err
}

func (p *Parser) parseMetadata() {
	md := &p.def.Metadata
	md.Title = p.doc.Info.Title
	md.Description = p.doc.Info.Description
	md.Version = p.doc.Info.Version
	md.BaseURL = BaseURL(p.doc.Schemes, p.doc.Host, p.doc.BasePath)
}

// BaseURL builds <scheme>://<host><basePath>/ with http and localhost as
// defaults. The trailing slash is only added when missing.
func BaseURL(schemes []string, host, basePath string) string {
	scheme := "http"
	if len(schemes) > 0 && schemes[0] != "" {
		scheme = schemes[0]
	}
	if host == "" {
		host = "localhost"
	}
	u := scheme + "://" + host + basePath
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

func (p *Parser) parseModels() error {
	for _, name := range SortedKeys(p.doc.Definitions) {
		model, err := p.parseModel(name)
		if err != nil {
			return err
		}
		p.def.Models[name] = model
		p.cfg.logger.Debug("parsed model", "model", name, "properties", len(model))
	}
	return nil
}

func (p *Parser) parseModel(name string) (ModelDefinition, error) {
	model := ModelDefinition{}
	ref := p.doc.Definitions[name]
	if ref == nil || ref.Value == nil {
		return model, nil
	}
	schema := ref.Value
	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}
	base := "#/definitions/" + pointerEscape(name) + "/properties/"
	for _, prop := range SortedKeys(schema.Properties) {
		dt, err := p.resolver.ResolveSchema(schema.Properties[prop], base+pointerEscape(prop))
		if err != nil {
			return nil, err
		}
		p.enums.Register(dt, prop+"_"+name)
		model[prop] = &Property{DataType: *dt, Required: required[prop]}
	}
	return model, nil
}

func (p *Parser) parseServices() error {
	for _, path := range SortedKeys(p.doc.Paths) {
		item := p.doc.Paths[path]
		if item == nil {
			continue
		}
		for _, verb := range Methods {
			op := operationFor(item, verb)
			if op == nil {
				continue
			}
			if err := p.parseEndpoint(path, verb, item, op); err != nil {
				return err
			}
		}
	}
	return nil
}

func operationFor(item *openapi2.PathItem, verb HttpMethod) *openapi2.Operation {
	switch verb {
	case GET:
		return item.Get
	case PUT:
		return item.Put
	case POST:
		return item.Post
	case DELETE:
		return item.Delete
	case OPTIONS:
		return item.Options
	case HEAD:
		return item.Head
	case PATCH:
		return item.Patch
	}
	return nil
}

func (p *Parser) parseEndpoint(path string, verb HttpMethod, item *openapi2.PathItem, op *openapi2.Operation) error {
	pointer := "#/paths/" + pointerEscape(path) + "/" + string(verb)
	if len(op.Tags) == 0 {
		return Errorf(MissingServiceTag, "cannot figure out service name for %s %s because it has no tags", strings.ToUpper(string(verb)), path).at(pointer)
	}
	serviceName := op.Tags[0]
	service, ok := p.def.Services[serviceName]
	if !ok {
		service = ServiceDefinition{}
		p.def.Services[serviceName] = service
	}

	name := op.OperationID
	if name == "" {
		name = OperationName(verb, path)
	}

	parsed, err := p.parseOperation(path, verb, item, op, name, pointer)
	if err != nil {
		return err
	}
	if prev, dup := service[name]; dup {
		p.cfg.logger.Warn("operation name reused, keeping the last one",
			"service", serviceName, "operation", name,
			"replaced", strings.ToUpper(string(prev.Verb))+" "+prev.Path,
			"by", strings.ToUpper(string(verb))+" "+path)
	}
	service[name] = parsed
	p.cfg.logger.Debug("parsed operation", "service", serviceName, "operation", name)
	return nil
}

// OperationName synthesizes a name from the verb and path:
// GET /pet/{id} becomes getPetId.
func OperationName(verb HttpMethod, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(verb)))
	upperNext := false
	for _, r := range path {
		switch {
		case r == '{' || r == '}':
			continue
		case r == '/':
			upperNext = true
			continue
		case upperNext && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
		upperNext = false
	}
	return b.String()
}

func (p *Parser) parseOperation(path string, verb HttpMethod, item *openapi2.PathItem, op *openapi2.Operation, name, pointer string) (*OperationDefinition, error) {
	out := &OperationDefinition{
		Path:         path,
		Verb:         verb,
		Description:  op.Summary,
		Description2: op.Description,
		Deprecated:   op.Deprecated,
		Parameters:   []*ParameterDefinition{},
	}

	pathPointer := pointer[:strings.LastIndex(pointer, "/")]
	for _, param := range mergeParameters(pathPointer, pointer, item.Parameters, op.Parameters) {
		dt, err := p.resolver.ResolveParameter(param.Parameter, param.pointer)
		if err != nil {
			return nil, err
		}
		p.enums.Register(dt, name+"_"+param.Name)
		out.Parameters = append(out.Parameters, &ParameterDefinition{
			Name:        param.Name,
			Type:        param.In,
			Description: param.Description,
			Required:    param.Required,
			DataType:    dt,
		})
	}

	if op.Responses != nil {
		out.Responses = map[string]*ResponseDefinition{}
		for _, code := range SortedKeys(op.Responses) {
			resp := op.Responses[code]
			rd := &ResponseDefinition{}
			if resp != nil && resp.Schema != nil {
				dt, err := p.resolver.ResolveSchema(resp.Schema, pointer+"/responses/"+pointerEscape(code)+"/schema")
				if err != nil {
					return nil, err
				}
				p.enums.Register(dt, name+"_Result_"+code)
				rd.DataType = dt
			}
			out.Responses[code] = rd
		}
	}
	return out, nil
}

type mergedParameter struct {
	*openapi2.Parameter
	pointer string
}

// mergeParameters puts path-level parameters first, replacing any that the
// operation redeclares with the same location and name.
func mergeParameters(pathPointer, opPointer string, pathLevel, opLevel openapi2.Parameters) []mergedParameter {
	key := func(p *openapi2.Parameter) string { return p.In + "\x00" + p.Name + "\x00" + p.Ref }
	overridden := map[string]bool{}
	for _, p := range opLevel {
		if p != nil {
			overridden[key(p)] = true
		}
	}
	out := make([]mergedParameter, 0, len(pathLevel)+len(opLevel))
	for i, p := range pathLevel {
		if p == nil || overridden[key(p)] {
			continue
		}
		out = append(out, mergedParameter{Parameter: p, pointer: pathPointer + "/parameters/" + strconv.Itoa(i)})
	}
	for i, p := range opLevel {
		if p == nil {
			continue
		}
		out = append(out, mergedParameter{Parameter: p, pointer: opPointer + "/parameters/" + strconv.Itoa(i)})
	}
	return out
}
