package model

// ParsedAPI is the normalized form of an input OpenAPI or Swagger document.
// Downstream stages treat it as read-only.
type ParsedAPI struct {
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Version        string                 `json:"version"`
	Servers        []Server               `json:"servers,omitempty"`
	Authentication []AuthenticationMethod `json:"authentication"`
	Endpoints      []APIEndpoint          `json:"endpoints"`
	Schemas        map[string]*Schema     `json:"schemas"`
	Tags           []string               `json:"tags"`
}

// EndpointByID returns the endpoint with the given id, or nil.
func (a *ParsedAPI) EndpointByID(id string) *APIEndpoint {
	for i := range a.Endpoints {
		if a.Endpoints[i].ID == id {
			return &a.Endpoints[i]
		}
	}
	return nil
}

// EndpointIDs returns all endpoint ids in document order.
func (a *ParsedAPI) EndpointIDs() []string {
	ids := make([]string, 0, len(a.Endpoints))
	for _, e := range a.Endpoints {
		ids = append(ids, e.ID)
	}
	return ids
}

// HasAuthentication reports whether the document declares any security scheme.
func (a *ParsedAPI) HasAuthentication() bool {
	return len(a.Authentication) > 0
}

// BaseURL returns the first declared server URL, or "" if none.
func (a *ParsedAPI) BaseURL() string {
	if len(a.Servers) == 0 {
		return ""
	}
	return a.Servers[0].URL
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type APIEndpoint struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Method      Method              `json:"method"`
	Path        string              `json:"path"`
	Description string              `json:"description"`
	Parameters  []EndpointParameter `json:"parameters"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   []Response          `json:"responses,omitempty"`
	Tags        []string            `json:"tags"`
	Category    string              `json:"category,omitempty"`
}

// ParametersIn returns the endpoint parameters declared at the given location.
func (e *APIEndpoint) ParametersIn(loc ParameterLocation) []EndpointParameter {
	var result []EndpointParameter
	for _, p := range e.Parameters {
		if p.Location == loc {
			result = append(result, p)
		}
	}
	return result
}

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

type ParameterLocation string

const (
	LocationPath   ParameterLocation = "path"
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationCookie ParameterLocation = "cookie"
)

type EndpointParameter struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Required    bool              `json:"required"`
	Location    ParameterLocation `json:"location"`
	Description string            `json:"description,omitempty"`
	Example     any               `json:"example,omitempty"`
}

// AuthenticationMethod describes one declared security scheme.
// Name is the scheme key in the document; ParamName is the header, query
// or cookie name an apiKey scheme is sent in.
type AuthenticationMethod struct {
	Type         AuthType    `json:"type"`
	Name         string      `json:"name"`
	ParamName    string      `json:"paramName,omitempty"`
	Location     string      `json:"location,omitempty"`
	Scheme       string      `json:"scheme,omitempty"`
	BearerFormat string      `json:"bearerFormat,omitempty"`
	Description  string      `json:"description,omitempty"`
	Flows        *OAuthFlows `json:"flows,omitempty"`
}

type AuthType string

const (
	AuthTypeAPIKey        AuthType = "apiKey"
	AuthTypeHTTP          AuthType = "http"
	AuthTypeBearer        AuthType = "bearer"
	AuthTypeOAuth2        AuthType = "oauth2"
	AuthTypeOpenIDConnect AuthType = "openIdConnect"
	AuthTypeBasic         AuthType = "basic"
)

type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty"`
}

type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	RefreshURL       string            `json:"refreshUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty"`
}
