package platform

import (
	"strings"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
)

const (
	SettingsFeatureName   = "API Settings"
	operationsFeatureName = "API Operations"
)

var languageOptions = []model.FieldOption{
	{Label: "English", Value: "en"},
	{Label: "Spanish", Value: "es"},
	{Label: "French", Value: "fr"},
	{Label: "German", Value: "de"},
	{Label: "Italian", Value: "it"},
	{Label: "Portuguese", Value: "pt"},
	{Label: "Dutch", Value: "nl"},
	{Label: "Japanese", Value: "ja"},
	{Label: "Chinese (Simplified)", Value: "zh-CN"},
	{Label: "Chinese (Traditional)", Value: "zh-TW"},
}

func languages() []model.FieldOption {
	return append([]model.FieldOption(nil), languageOptions...)
}

// settingsForm is the credentials form every bundle starts with: one text
// field per declared security scheme plus an enable switch.
func settingsForm(api *model.ParsedAPI, extra ...model.FormField) []model.UIComponent {
	var fields []model.FormField
	for _, auth := range api.Authentication {
		name, label := auth.Name, auth.Name
		if name == "" {
			name, label = "apiKey", "API Key"
		}
		fields = append(fields, model.FormField{Name: name, Type: model.FieldText, Label: label, Required: true})
	}
	fields = append(fields, model.FormField{Name: "enabled", Type: model.FieldCheckbox, Label: "Enable API Integration"})
	fields = append(fields, extra...)

	return []model.UIComponent{{
		Type:   "form",
		Name:   "api-settings",
		Fields: fields,
		Actions: []model.ComponentAction{
			{Name: "save", Type: "submit"},
			{Name: "test", Type: "submit", Endpoint: "test-connection"},
		},
	}}
}

type categoryGroup struct {
	Name      string
	Endpoints []string
}

// groupByCategory buckets endpoint ids by their parse-time category in
// first-seen order.
func groupByCategory(api *model.ParsedAPI) []categoryGroup {
	var groups []categoryGroup
	index := map[string]int{}
	for _, e := range api.Endpoints {
		category := e.Category
		if category == "" {
			category = "general"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, categoryGroup{Name: category})
		}
		groups[i].Endpoints = append(groups[i].Endpoints, e.ID)
	}
	return groups
}

// operationsFeature collects the endpoints no category template claimed so
// every endpoint stays reachable from the bundle's UI.
func operationsFeature(api *apiData, ids []string, impl model.Implementation) (model.PlatformFeature, bool) {
	if len(ids) == 0 {
		return model.PlatformFeature{}, false
	}
	return model.PlatformFeature{
		Name:           operationsFeatureName,
		Description:    "Call the remaining " + api.Name + " endpoints directly",
		APIEndpoints:   ids,
		Implementation: impl,
		UserInterface:  featureUI("api-operations", intelligence.IntegrationUI, endpointsByID(api.Endpoints, ids)),
	}, true
}

// sessionFeatures maps the selected plugin features, in suggestion order.
func sessionFeatures(api *apiData, opts Options, impl func(intelligence.IntegrationType) model.Implementation) []model.PlatformFeature {
	var result []model.PlatformFeature
	for _, f := range opts.Intelligence.SuggestedFeatures {
		if !opts.selected(f.ID) {
			continue
		}
		result = append(result, model.PlatformFeature{
			Name:           f.Name,
			Description:    f.Description,
			APIEndpoints:   append([]string{}, f.Endpoints...),
			Implementation: impl(f.Integration.Type),
			UserInterface:  featureUI(f.ID, f.Integration.Type, endpointsByID(api.Endpoints, f.Endpoints)),
		})
	}
	return result
}

// featureUI derives a form from the first endpoint the feature drives.
func featureUI(id string, it intelligence.IntegrationType, endpoints []endpointData) []model.UIComponent {
	var target string
	if len(endpoints) > 0 {
		target = endpoints[0].ID
	}

	if it == intelligence.IntegrationBatch {
		return []model.UIComponent{{
			Type: "form",
			Name: id + "-batch",
			Fields: []model.FormField{
				{Name: "items", Type: model.FieldTextarea, Label: "Items (one per line)", Required: true},
				{Name: "batchSize", Type: model.FieldNumber, Label: "Batch Size"},
			},
			Actions: []model.ComponentAction{{
				Name:                "run-batch",
				Type:                "submit",
				Endpoint:            target,
				ConfirmationMessage: "This will call the API once per item. Continue?",
			}},
		}}
	}

	var fields []model.FormField
	if len(endpoints) > 0 {
		e := endpoints[0]
		for _, p := range append(append([]paramData{}, e.PathParams...), e.QueryParams...) {
			fields = append(fields, model.FormField{
				Name:     p.Name,
				Type:     fieldType(p.Type),
				Label:    naming.TitleCase(p.Name),
				Required: p.Required,
			})
		}
		if e.HasBody {
			fields = append(fields, model.FormField{Name: "body", Type: model.FieldTextarea, Label: "Request Body (JSON)"})
		}
	}
	if len(fields) == 0 {
		fields = []model.FormField{{Name: "input", Type: model.FieldTextarea, Label: "Input"}}
	}

	return []model.UIComponent{{
		Type:    "form",
		Name:    id + "-form",
		Fields:  fields,
		Actions: []model.ComponentAction{{Name: "submit", Type: "submit", Endpoint: target}},
	}}
}

func fieldType(schemaType string) model.FieldType {
	switch model.SchemaType(schemaType) {
	case model.TypeInteger, model.TypeNumber:
		return model.FieldNumber
	case model.TypeBoolean:
		return model.FieldCheckbox
	default:
		return model.FieldText
	}
}

// formFields flattens the fields of every UI component of a feature.
func formFields(f model.PlatformFeature) []model.FormField {
	fields := []model.FormField{}
	for _, ui := range f.UserInterface {
		fields = append(fields, ui.Fields...)
	}
	return fields
}

// formActions flattens the actions of every UI component of a feature.
func formActions(f model.PlatformFeature) []model.ComponentAction {
	actions := []model.ComponentAction{}
	for _, ui := range f.UserInterface {
		actions = append(actions, ui.Actions...)
	}
	return actions
}

// mentionsLanguages reports whether any feature deals with translation or
// languages.
func mentionsLanguages(features []model.PlatformFeature) bool {
	for _, f := range features {
		text := strings.ToLower(f.Name + " " + f.Description)
		if strings.Contains(text, "translat") || strings.Contains(text, "language") {
			return true
		}
	}
	return false
}
