package platform

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
)

const placeholderBaseURL = "https://api.example.com"

// apiData is the naming and connection data shared by every template of a
// bundle.
type apiData struct {
	Name        string
	Description string
	Version     string
	Slug        string
	Snake       string
	Pascal      string
	Class       string
	EnvPrefix   string

	BaseURL            string
	BaseURLPlaceholder bool
	Auth               authBinding
	Endpoints          []endpointData
	// Probe is the endpoint generated clients call to test the connection:
	// the first GET without path parameters.
	Probe *endpointData
}

type endpointData struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`

	JSName      string      `json:"-"`
	PHPName     string      `json:"-"`
	PathParams  []paramData `json:"pathParams"`
	QueryParams []paramData `json:"queryParams"`
	HasBody     bool        `json:"hasBody"`
}

type paramData struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// authBinding is how generated clients attach the API credential.
type authBinding struct {
	Scheme      string `json:"scheme,omitempty"`
	Type        string `json:"type,omitempty"`
	Header      string `json:"header,omitempty"`
	Prefix      string `json:"prefix"`
	QueryParam  string `json:"queryParam,omitempty"`
	Placeholder bool   `json:"authPlaceholder"`
}

// InQuery reports whether the credential is sent as a query parameter.
func (a authBinding) InQuery() bool {
	return a.QueryParam != ""
}

// resolveAuth derives the credential binding from the first declared
// security scheme. Without one it falls back to a bearer Authorization
// header flagged as a placeholder.
func resolveAuth(api *model.ParsedAPI) authBinding {
	if len(api.Authentication) == 0 {
		return authBinding{Header: "Authorization", Prefix: "Bearer ", Placeholder: true}
	}
	m := api.Authentication[0]
	b := authBinding{Scheme: m.Name, Type: string(m.Type)}

	switch m.Type {
	case model.AuthTypeAPIKey:
		name := m.ParamName
		if name == "" {
			name = m.Name
		}
		switch m.Location {
		case "query":
			b.QueryParam = name
		case "cookie":
			b.Header = "Cookie"
			b.Prefix = name + "="
		default:
			b.Header = name
		}
	case model.AuthTypeBasic:
		b.Header = "Authorization"
		b.Prefix = "Basic "
	case model.AuthTypeHTTP:
		b.Header = "Authorization"
		if strings.EqualFold(m.Scheme, "basic") {
			b.Prefix = "Basic "
		} else {
			b.Prefix = "Bearer "
		}
	default:
		b.Header = "Authorization"
		b.Prefix = "Bearer "
	}
	return b
}

// config is the auth entry written to a bundle's configuration.
func (a authBinding) config() map[string]any {
	cfg := map[string]any{
		"prefix":          a.Prefix,
		"authPlaceholder": a.Placeholder,
	}
	if a.InQuery() {
		cfg["in"] = "query"
		cfg["name"] = a.QueryParam
	} else {
		cfg["in"] = "header"
		cfg["header"] = a.Header
	}
	if a.Scheme != "" {
		cfg["scheme"] = a.Scheme
		cfg["type"] = a.Type
	}
	return cfg
}

func newAPIData(api *model.ParsedAPI) *apiData {
	d := &apiData{
		Name:        api.Name,
		Description: api.Description,
		Version:     api.Version,
		Slug:        naming.KebabCase(api.Name),
		Snake:       naming.SnakeCase(api.Name),
		Pascal:      naming.PascalCase(api.Name),
		Class:       naming.PHPClass(api.Name),
		EnvPrefix:   naming.EnvName(api.Name),
		BaseURL:     strings.TrimSuffix(api.BaseURL(), "/"),
		Auth:        resolveAuth(api),
		Endpoints:   bindEndpoints(api.Endpoints),
	}
	if d.Slug == "" {
		d.Slug, d.Snake, d.Pascal, d.Class, d.EnvPrefix = "api", "api", "API", "API", "API"
	}
	if unicode.IsDigit(rune(d.Pascal[0])) {
		d.Pascal, d.Class = "API"+d.Pascal, "API_"+d.Class
	}
	if d.Version == "" {
		d.Version = "1.0.0"
	}
	if d.BaseURL == "" {
		d.BaseURL = placeholderBaseURL
		d.BaseURLPlaceholder = true
	}
	for i, e := range d.Endpoints {
		if e.Method == string(model.MethodGet) && len(e.PathParams) == 0 {
			d.Probe = &d.Endpoints[i]
			break
		}
	}
	return d
}

func bindEndpoints(endpoints []model.APIEndpoint) []endpointData {
	result := make([]endpointData, 0, len(endpoints))
	jsSeen := map[string]int{}
	phpSeen := map[string]int{}

	for _, e := range endpoints {
		d := endpointData{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Method:      string(e.Method),
			Path:        e.Path,
			JSName:      unique(naming.JSIdentifier(e.ID), jsSeen),
			PHPName:     unique("api_"+naming.SnakeCase(e.ID), phpSeen),
			PathParams:  bindParams(e.ParametersIn(model.LocationPath)),
			QueryParams: bindParams(e.ParametersIn(model.LocationQuery)),
			HasBody:     e.RequestBody != nil,
		}
		result = append(result, d)
	}
	return result
}

func bindParams(params []model.EndpointParameter) []paramData {
	result := make([]paramData, 0, len(params))
	for _, p := range params {
		result = append(result, paramData{Name: p.Name, Type: p.Type, Required: p.Required})
	}
	return result
}

// unique suffixes name with a counter when it was already handed out.
func unique(name string, seen map[string]int) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	return name + strconv.Itoa(n+1)
}

// endpointsByID keeps the endpoints whose id is in ids, in document order.
func endpointsByID(all []endpointData, ids []string) []endpointData {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	result := []endpointData{}
	for _, e := range all {
		if want[e.ID] {
			result = append(result, e)
		}
	}
	return result
}
