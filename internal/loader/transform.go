package loader

import (
	"regexp"
	"strings"

	"github.com/kolah/plugforge/internal/model"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"go.yaml.in/yaml/v4"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// EndpointID returns the operation id if set, otherwise an id synthesized
// from the lowercased method and the path with every non-alphanumeric
// character replaced by an underscore.
func EndpointID(operationID string, method model.Method, path string) string {
	if operationID != "" {
		return operationID
	}
	return strings.ToLower(string(method)) + "_" + nonAlphanumeric.ReplaceAllString(path, "_")
}

func endpointName(summary string, method model.Method, path string) string {
	if summary != "" {
		return summary
	}
	return string(method) + " " + path
}

func endpointDescription(description, summary string) string {
	if description != "" {
		return description
	}
	return summary
}

type transformer struct {
	schemas  *schemaInliner
	tagsSeen map[string]bool
}

func newTransformer() *transformer {
	return &transformer{
		schemas:  newSchemaInliner(),
		tagsSeen: make(map[string]bool),
	}
}

func transformV3(doc *v3.Document) *model.ParsedAPI {
	t := newTransformer()

	api := &model.ParsedAPI{
		Servers:        transformServers(doc.Servers),
		Authentication: []model.AuthenticationMethod{},
		Endpoints:      []model.APIEndpoint{},
		Schemas:        make(map[string]*model.Schema),
		Tags:           []string{},
	}
	if doc.Info != nil {
		api.Name = doc.Info.Title
		api.Description = doc.Info.Description
		api.Version = doc.Info.Version
	}

	if doc.Components != nil && doc.Components.Schemas != nil {
		for name, schemaProxy := range doc.Components.Schemas.FromOldest() {
			schema := t.schemas.inline(schemaProxy)
			if schema != nil {
				schema.Name = name
				api.Schemas[name] = schema
			}
		}
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			for _, endpoint := range t.transformPath(pathStr, pathItem) {
				api.Endpoints = append(api.Endpoints, endpoint)
				api.Tags = t.collectTags(api.Tags, endpoint.Tags)
			}
		}
	}

	if doc.Components != nil && doc.Components.SecuritySchemes != nil {
		for name, scheme := range doc.Components.SecuritySchemes.FromOldest() {
			api.Authentication = append(api.Authentication, transformSecurityScheme(name, scheme))
		}
	}

	return api
}

func (t *transformer) collectTags(all, tags []string) []string {
	for _, tag := range tags {
		if !t.tagsSeen[tag] {
			t.tagsSeen[tag] = true
			all = append(all, tag)
		}
	}
	return all
}

func transformServers(servers []*v3.Server) []model.Server {
	var result []model.Server
	for _, s := range servers {
		result = append(result, model.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return result
}

func (t *transformer) transformPath(pathStr string, pathItem *v3.PathItem) []model.APIEndpoint {
	var endpoints []model.APIEndpoint

	// Use a slice for deterministic ordering
	methods := []struct {
		method model.Method
		op     *v3.Operation
	}{
		{model.MethodGet, pathItem.Get},
		{model.MethodPost, pathItem.Post},
		{model.MethodPut, pathItem.Put},
		{model.MethodDelete, pathItem.Delete},
		{model.MethodPatch, pathItem.Patch},
	}

	for _, m := range methods {
		if m.op == nil {
			continue
		}
		endpoints = append(endpoints, t.transformOperation(m.method, pathStr, pathItem.Parameters, m.op))
	}

	return endpoints
}

func (t *transformer) transformOperation(method model.Method, path string, shared []*v3.Parameter, op *v3.Operation) model.APIEndpoint {
	endpoint := model.APIEndpoint{
		ID:          EndpointID(op.OperationId, method, path),
		Name:        endpointName(op.Summary, method, path),
		Method:      method,
		Path:        path,
		Description: endpointDescription(op.Description, op.Summary),
		Parameters:  []model.EndpointParameter{},
		Tags:        []string{},
	}
	if len(op.Tags) > 0 {
		endpoint.Tags = append(endpoint.Tags, op.Tags...)
	}

	endpoint.Parameters = t.mergeParameters(shared, op.Parameters)

	if op.RequestBody != nil {
		endpoint.RequestBody = t.transformRequestBody(op.RequestBody)
	}

	if op.Responses != nil && op.Responses.Codes != nil {
		for code, resp := range op.Responses.Codes.FromOldest() {
			endpoint.Responses = append(endpoint.Responses, t.transformResponse(code, resp))
		}
	}

	endpoint.Category = Categorize(endpoint)

	return endpoint
}

// mergeParameters applies operation parameters over path-item parameters,
// keyed by name and location.
func (t *transformer) mergeParameters(shared, own []*v3.Parameter) []model.EndpointParameter {
	result := []model.EndpointParameter{}
	index := make(map[string]int)

	add := func(p *v3.Parameter) {
		if p == nil {
			return
		}
		param := t.transformParameter(p)
		key := string(param.Location) + ":" + param.Name
		if i, ok := index[key]; ok {
			result[i] = param
			return
		}
		index[key] = len(result)
		result = append(result, param)
	}

	for _, p := range shared {
		add(p)
	}
	for _, p := range own {
		add(p)
	}
	return result
}

func (t *transformer) transformParameter(p *v3.Parameter) model.EndpointParameter {
	param := model.EndpointParameter{
		Name:        p.Name,
		Type:        string(model.TypeString),
		Required:    boolPtr(p.Required),
		Location:    model.ParameterLocation(strings.ToLower(p.In)),
		Description: p.Description,
		Example:     decodeNode(p.Example),
	}

	var schema *base.Schema
	if p.Schema != nil {
		schema = p.Schema.Schema()
	} else if p.Content != nil {
		for _, content := range p.Content.FromOldest() {
			if content.Schema != nil {
				schema = content.Schema.Schema()
				break
			}
		}
	}

	if schema != nil {
		if len(schema.Type) > 0 {
			param.Type = schema.Type[0]
		}
		if param.Example == nil {
			param.Example = decodeNode(schema.Example)
		}
	}

	return param
}

func (t *transformer) transformRequestBody(rb *v3.RequestBody) *model.RequestBody {
	body := &model.RequestBody{
		Description: rb.Description,
		Required:    boolPtr(rb.Required),
	}

	if rb.Content != nil {
		for mediaType, content := range rb.Content.FromOldest() {
			mtc := model.MediaTypeContent{MediaType: mediaType}
			if content.Schema != nil {
				mtc.Schema = t.schemas.inline(content.Schema)
			}
			body.Content = append(body.Content, mtc)
		}
	}

	return body
}

func (t *transformer) transformResponse(code string, resp *v3.Response) model.Response {
	response := model.Response{
		StatusCode:  code,
		Description: resp.Description,
	}

	if resp.Content != nil {
		for mediaType, content := range resp.Content.FromOldest() {
			mtc := model.MediaTypeContent{MediaType: mediaType}
			if content.Schema != nil {
				mtc.Schema = t.schemas.inline(content.Schema)
			}
			response.Content = append(response.Content, mtc)
		}
	}

	if resp.Headers != nil {
		for name, header := range resp.Headers.FromOldest() {
			h := model.Header{
				Name:        name,
				Description: header.Description,
				Required:    header.Required,
			}
			if header.Schema != nil {
				h.Schema = t.schemas.inline(header.Schema)
			}
			response.Headers = append(response.Headers, h)
		}
	}

	return response
}

func transformSecurityScheme(name string, scheme *v3.SecurityScheme) model.AuthenticationMethod {
	auth := model.AuthenticationMethod{
		Type:         model.AuthType(scheme.Type),
		Name:         name,
		Location:     scheme.In,
		Scheme:       scheme.Scheme,
		BearerFormat: scheme.BearerFormat,
		Description:  scheme.Description,
	}
	if scheme.Type == string(model.AuthTypeAPIKey) {
		auth.ParamName = scheme.Name
	}

	if scheme.Flows != nil {
		auth.Flows = &model.OAuthFlows{}
		if scheme.Flows.Implicit != nil {
			auth.Flows.Implicit = transformOAuthFlow(scheme.Flows.Implicit)
		}
		if scheme.Flows.Password != nil {
			auth.Flows.Password = transformOAuthFlow(scheme.Flows.Password)
		}
		if scheme.Flows.ClientCredentials != nil {
			auth.Flows.ClientCredentials = transformOAuthFlow(scheme.Flows.ClientCredentials)
		}
		if scheme.Flows.AuthorizationCode != nil {
			auth.Flows.AuthorizationCode = transformOAuthFlow(scheme.Flows.AuthorizationCode)
		}
	}

	return auth
}

func transformOAuthFlow(flow *v3.OAuthFlow) *model.OAuthFlow {
	f := &model.OAuthFlow{
		AuthorizationURL: flow.AuthorizationUrl,
		TokenURL:         flow.TokenUrl,
		RefreshURL:       flow.RefreshUrl,
		Scopes:           make(map[string]string),
	}

	if flow.Scopes != nil {
		for scope, desc := range flow.Scopes.FromOldest() {
			f.Scopes[scope] = desc
		}
	}

	return f
}

// decodeNode converts a raw YAML node (example or default value) into plain
// Go values.
func decodeNode(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return node.Value
	}
	return v
}

func boolPtr(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
