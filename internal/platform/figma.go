package platform

import (
	"regexp"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/templates"
)

const (
	figmaRunnerLimit = 12
	figmaDir         = "figma-plugin/"
)

var translatePath = regexp.MustCompile(`(?i)translat`)

// FigmaTransformer renders a Figma plugin with a settings card and an
// endpoint runner.
type FigmaTransformer struct {
	engine templates.Engine
}

func (t *FigmaTransformer) Kind() Kind {
	return Figma
}

func (t *FigmaTransformer) Transform(api *model.ParsedAPI, opts Options) (*model.PlatformTransformation, error) {
	d := newAPIData(api)

	runner := d.Endpoints
	var selected []model.PlatformFeature
	apply := false

	if opts.hasSession() {
		selected = sessionFeatures(d, opts, figmaImplementation)
		var ids []string
		for _, f := range opts.Intelligence.SuggestedFeatures {
			if opts.selected(f.ID) {
				ids = append(ids, f.Endpoints...)
				apply = apply || f.Integration.Type == intelligence.IntegrationSelection
			}
		}
		if len(ids) > 0 {
			runner = endpointsByID(d.Endpoints, ids)
		}
	}
	runner = runner[:min(len(runner), figmaRunnerLimit)]

	var translate []string
	for _, e := range d.Endpoints {
		if translatePath.MatchString(e.Path) {
			translate = append(translate, e.ID)
		}
	}
	apply = apply || len(translate) > 0

	features := []model.PlatformFeature{figmaSettingsFeature(d), runnerFeature(runner, apply)}
	if opts.hasSession() {
		features = append(features, selected...)
	} else if len(translate) > 0 {
		features = append(features, model.PlatformFeature{
			Name:           "Apply Translation to Selection",
			Description:    "Apply API translation results to selected text nodes in Figma",
			APIEndpoints:   translate,
			Implementation: model.ImplementationAdminUI,
		})
	}

	data := bundleData{API: d, Features: features, Runner: runner, ApplyToSelection: apply}
	files, err := render(t.engine, []file{
		{figmaDir + "manifest.json", "figma/manifest.json", model.FileTypeConfig, "json", data},
		{figmaDir + "code.js", "figma/code.js", model.FileTypeComponent, "javascript", data},
		{figmaDir + "ui.html", "figma/ui.html", model.FileTypeComponent, "html", data},
		{figmaDir + "styles.css", "figma/styles.css", model.FileTypeComponent, "css", data},
		{figmaDir + "README.md", "figma/README.md", model.FileTypeDocumentation, "markdown", data},
	})
	if err != nil {
		return nil, err
	}

	docs, err := t.engine.Execute("figma/documentation.md", data)
	if err != nil {
		return nil, err
	}

	return &model.PlatformTransformation{
		Platform:      string(Figma),
		Features:      features,
		CodeFiles:     files,
		Configuration: figmaConfig(api, d),
		Documentation: docs,
	}, nil
}

func figmaImplementation(intelligence.IntegrationType) model.Implementation {
	return model.ImplementationAdminUI
}

func figmaSettingsFeature(d *apiData) model.PlatformFeature {
	return model.PlatformFeature{
		Name:           SettingsFeatureName,
		Description:    "Configure " + d.Name + " Base URL and API Key stored in Figma client storage",
		APIEndpoints:   []string{},
		Implementation: model.ImplementationAdminUI,
		UserInterface: []model.UIComponent{{
			Type: "form",
			Name: "api-settings",
			Fields: []model.FormField{
				{Name: "baseUrl", Type: model.FieldText, Label: "Base URL", Required: true},
				{Name: "apiKey", Type: model.FieldText, Label: "API Key"},
			},
			Actions: []model.ComponentAction{
				{Name: "save", Type: "submit"},
				{Name: "reload", Type: "button"},
			},
		}},
	}
}

func runnerFeature(runner []endpointData, apply bool) model.PlatformFeature {
	ids := make([]string, 0, len(runner))
	options := make([]model.FieldOption, 0, len(runner))
	for _, e := range runner {
		ids = append(ids, e.ID)
		options = append(options, model.FieldOption{Label: "[" + e.Method + "] " + e.Path, Value: e.ID})
	}

	actions := []model.ComponentAction{{Name: "run", Type: "submit"}}
	if apply {
		actions = append(actions, model.ComponentAction{Name: "apply-to-selection", Type: "button"})
	}

	return model.PlatformFeature{
		Name:           "Endpoint Runner",
		Description:    "Browse endpoints and call them from the plugin UI",
		APIEndpoints:   ids,
		Implementation: model.ImplementationAdminUI,
		UserInterface: []model.UIComponent{{
			Type: "form",
			Name: "endpoint-runner",
			Fields: []model.FormField{
				{Name: "endpoint", Type: model.FieldSelect, Label: "Endpoint", Required: true, Options: options},
				{Name: "pathParams", Type: model.FieldTextarea, Label: "Path Params (JSON)"},
				{Name: "queryParams", Type: model.FieldTextarea, Label: "Query Params (JSON)"},
				{Name: "body", Type: model.FieldTextarea, Label: "Body (JSON)"},
			},
			Actions: actions,
		}},
	}
}

func figmaConfig(api *model.ParsedAPI, d *apiData) map[string]any {
	var auth any
	if len(api.Authentication) > 0 {
		auth = api.Authentication[0]
	}
	return map[string]any{
		"editorType":         []string{"figma", "figjam"},
		"auth":               auth,
		"authBinding":        d.Auth.config(),
		"authPlaceholder":    d.Auth.Placeholder,
		"baseUrl":            d.BaseURL,
		"baseUrlPlaceholder": d.BaseURLPlaceholder,
	}
}
