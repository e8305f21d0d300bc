package loader

import (
	"strings"

	"github.com/kolah/plugforge/internal/model"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
)

func transformV2(doc *v2.Swagger) *model.ParsedAPI {
	t := newTransformer()

	api := &model.ParsedAPI{
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

	if doc.Host != "" {
		scheme := "https"
		if len(doc.Schemes) > 0 {
			scheme = doc.Schemes[0]
		}
		api.Servers = []model.Server{{URL: scheme + "://" + doc.Host + doc.BasePath}}
	}

	if doc.Definitions != nil && doc.Definitions.Definitions != nil {
		for name, proxy := range doc.Definitions.Definitions.FromOldest() {
			schema := t.schemas.inline(proxy)
			if schema != nil {
				schema.Name = name
				api.Schemas[name] = schema
			}
		}
	}

	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for pathStr, pathItem := range doc.Paths.PathItems.FromOldest() {
			methods := []struct {
				method model.Method
				op     *v2.Operation
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
				endpoint := t.transformV2Operation(m.method, pathStr, pathItem.Parameters, m.op)
				api.Endpoints = append(api.Endpoints, endpoint)
				api.Tags = t.collectTags(api.Tags, endpoint.Tags)
			}
		}
	}

	if doc.SecurityDefinitions != nil && doc.SecurityDefinitions.Definitions != nil {
		for name, scheme := range doc.SecurityDefinitions.Definitions.FromOldest() {
			api.Authentication = append(api.Authentication, transformV2SecurityScheme(name, scheme))
		}
	}

	return api
}

func (t *transformer) transformV2Operation(method model.Method, path string, shared []*v2.Parameter, op *v2.Operation) model.APIEndpoint {
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

	var body *v2.Parameter
	var form []*v2.Parameter
	index := make(map[string]int)

	for _, p := range append(append([]*v2.Parameter{}, shared...), op.Parameters...) {
		if p == nil {
			continue
		}
		switch strings.ToLower(p.In) {
		case "body":
			body = p
			continue
		case "formdata":
			form = append(form, p)
			continue
		}

		param := model.EndpointParameter{
			Name:        p.Name,
			Type:        p.Type,
			Required:    boolPtr(p.Required),
			Location:    model.ParameterLocation(strings.ToLower(p.In)),
			Description: p.Description,
		}
		if param.Type == "" {
			param.Type = string(model.TypeString)
		}

		key := string(param.Location) + ":" + param.Name
		if i, ok := index[key]; ok {
			endpoint.Parameters[i] = param
			continue
		}
		index[key] = len(endpoint.Parameters)
		endpoint.Parameters = append(endpoint.Parameters, param)
	}

	mediaType := "application/json"
	if len(op.Consumes) > 0 {
		mediaType = op.Consumes[0]
	}

	switch {
	case body != nil:
		endpoint.RequestBody = &model.RequestBody{
			Description: body.Description,
			Required:    boolPtr(body.Required),
			Content: []model.MediaTypeContent{{
				MediaType: mediaType,
				Schema:    t.schemas.inline(body.Schema),
			}},
		}
	case len(form) > 0:
		if mediaType == "application/json" {
			mediaType = "application/x-www-form-urlencoded"
		}
		schema := &model.Schema{Type: model.TypeObject}
		for _, p := range form {
			fieldType := p.Type
			if fieldType == "" {
				fieldType = string(model.TypeString)
			}
			schema.Properties = append(schema.Properties, model.Property{
				Name:   p.Name,
				Schema: &model.Schema{Name: p.Name, Type: model.SchemaType(fieldType), Description: p.Description},
			})
			if boolPtr(p.Required) {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		endpoint.RequestBody = &model.RequestBody{
			Required: len(schema.Required) > 0,
			Content:  []model.MediaTypeContent{{MediaType: mediaType, Schema: schema}},
		}
	}

	if op.Responses != nil && op.Responses.Codes != nil {
		for code, resp := range op.Responses.Codes.FromOldest() {
			response := model.Response{StatusCode: code, Description: resp.Description}
			if resp.Schema != nil {
				response.Content = []model.MediaTypeContent{{
					MediaType: "application/json",
					Schema:    t.schemas.inline(resp.Schema),
				}}
			}
			endpoint.Responses = append(endpoint.Responses, response)
		}
	}

	endpoint.Category = Categorize(endpoint)

	return endpoint
}

func transformV2SecurityScheme(name string, scheme *v2.SecurityScheme) model.AuthenticationMethod {
	auth := model.AuthenticationMethod{
		Type:        model.AuthType(scheme.Type),
		Name:        name,
		Location:    scheme.In,
		Description: scheme.Description,
	}

	switch scheme.Type {
	case string(model.AuthTypeAPIKey):
		auth.ParamName = scheme.Name
	case string(model.AuthTypeBasic):
		auth.Type = model.AuthTypeHTTP
		auth.Scheme = "basic"
	case string(model.AuthTypeOAuth2):
		flow := &model.OAuthFlow{
			AuthorizationURL: scheme.AuthorizationUrl,
			TokenURL:         scheme.TokenUrl,
			Scopes:           make(map[string]string),
		}
		if scheme.Scopes != nil && scheme.Scopes.Values != nil {
			for scope, desc := range scheme.Scopes.Values.FromOldest() {
				flow.Scopes[scope] = desc
			}
		}
		auth.Flows = &model.OAuthFlows{}
		switch scheme.Flow {
		case "implicit":
			auth.Flows.Implicit = flow
		case "password":
			auth.Flows.Password = flow
		case "application":
			auth.Flows.ClientCredentials = flow
		case "accessCode":
			auth.Flows.AuthorizationCode = flow
		}
	}

	return auth
}
