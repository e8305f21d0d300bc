package platform

import (
	"slices"
	"strconv"
	"strings"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
	"github.com/kolah/plugforge/internal/templates"
)

const (
	wpMinPHP       = "7.4"
	wpMinWordPress = "5.0"
)

// WordPressTransformer renders a WordPress plugin with an admin menu, one
// admin page per feature, shortcodes and a widget.
type WordPressTransformer struct {
	engine templates.Engine
}

type pageData struct {
	Feature    model.PlatformFeature
	Slug       string
	IsSettings bool
}

func (t *WordPressTransformer) Kind() Kind {
	return WordPress
}

func (t *WordPressTransformer) Transform(api *model.ParsedAPI, opts Options) (*model.PlatformTransformation, error) {
	d := newAPIData(api)

	var features []model.PlatformFeature
	switch {
	case opts.WordPress != nil && opts.SelectedFeatures != nil:
		features = wordpressIntelligentFeatures(d, opts)
	case opts.hasSession():
		features = sessionFeatures(d, opts, wordpressImplementation)
	default:
		features = wordpressCategoryFeatures(api, d)
	}

	var extra []model.FormField
	if mentionsLanguages(features) {
		extra = append(extra, model.FormField{Name: "auto_translate", Type: model.FieldCheckbox, Label: "Auto-translate new content"})
	}
	features = append([]model.PlatformFeature{{
		Name:           SettingsFeatureName,
		Description:    "Configure " + d.Name + " API credentials and settings",
		APIEndpoints:   []string{},
		Implementation: model.ImplementationAdminUI,
		UserInterface:  settingsForm(api, extra...),
	}}, features...)

	data := bundleData{API: d, Features: features}
	for _, f := range features {
		if len(f.UserInterface) > 0 {
			data.Pages = append(data.Pages, pageData{Feature: f, Slug: naming.KebabCase(f.Name), IsSettings: f.Name == SettingsFeatureName})
		}
	}

	files := []file{
		{d.Slug + "-integration.php", "wordpress/plugin.php", model.FileTypeConfig, "php", data},
		{"uninstall.php", "wordpress/uninstall.php", model.FileTypeConfig, "php", data},
		{"includes/class-api-service.php", "wordpress/class-api-service.php", model.FileTypeAPI, "php", data},
		{"includes/class-admin.php", "wordpress/class-admin.php", model.FileTypeComponent, "php", data},
		{"includes/class-shortcodes.php", "wordpress/class-shortcodes.php", model.FileTypeComponent, "php", data},
		{"includes/class-widget.php", "wordpress/class-widget.php", model.FileTypeComponent, "php", data},
		{"includes/class-activator.php", "wordpress/class-activator.php", model.FileTypeConfig, "php", data},
		{"admin/pages/main.php", "wordpress/main-page.php", model.FileTypeComponent, "php", data},
	}
	for _, p := range data.Pages {
		files = append(files, file{"admin/pages/" + p.Slug + ".php", "wordpress/feature-page.php", model.FileTypeComponent, "php", data.forFeature(p.Feature)})
	}
	files = append(files,
		file{"assets/admin.css", "wordpress/admin.css", model.FileTypeComponent, "css", data},
		file{"assets/admin.js", "wordpress/admin.js", model.FileTypeComponent, "javascript", data},
	)

	code, err := render(t.engine, files)
	if err != nil {
		return nil, err
	}

	docs, err := t.engine.Execute("wordpress/documentation.md", struct {
		bundleData
		WP *intelligence.WordPressIntelligence
	}{data, opts.WordPress})
	if err != nil {
		return nil, err
	}
	help, err := renderHelpPage(d.Slug, docs)
	if err != nil {
		return nil, err
	}
	code = append(code, model.CodeFile{
		Path:     "admin/help.html",
		Content:  help,
		Type:     model.FileTypeDocumentation,
		Language: "html",
	})

	return &model.PlatformTransformation{
		Platform:      string(WordPress),
		Features:      features,
		CodeFiles:     code,
		Configuration: wordpressConfig(d, features, opts),
		Documentation: docs,
	}, nil
}

func wordpressImplementation(it intelligence.IntegrationType) model.Implementation {
	if it == intelligence.IntegrationWorkflow {
		return model.ImplementationWebhook
	}
	return model.ImplementationAdminUI
}

func wpImplementation(t intelligence.WPIntegrationType) model.Implementation {
	switch t {
	case intelligence.WPGutenbergBlock:
		return model.ImplementationBlock
	case intelligence.WPThemeIntegration:
		return model.ImplementationThemeExtension
	case intelligence.WPRestEndpoint:
		return model.ImplementationAPIIntegration
	case intelligence.WPCronJob:
		return model.ImplementationWebhook
	default:
		return model.ImplementationAdminUI
	}
}

// wordpressIntelligentFeatures maps the selected WordPress features in
// suggestion order.
func wordpressIntelligentFeatures(d *apiData, opts Options) []model.PlatformFeature {
	var result []model.PlatformFeature
	for _, f := range opts.WordPress.Features {
		if !opts.selected(f.ID) {
			continue
		}
		result = append(result, model.PlatformFeature{
			Name:           f.Name,
			Description:    f.Description,
			APIEndpoints:   append([]string{}, f.Endpoints...),
			Implementation: wpImplementation(f.WordPress.Type),
			UserInterface:  wordpressUI(f, endpointsByID(d.Endpoints, f.Endpoints)),
		})
	}
	return result
}

func wordpressUI(f intelligence.WordPressFeature, endpoints []endpointData) []model.UIComponent {
	var target string
	if len(endpoints) > 0 {
		target = endpoints[0].ID
	}

	switch f.WordPress.Type {
	case intelligence.WPGutenbergBlock:
		return []model.UIComponent{{
			Type:    "form",
			Name:    f.ID + "-block",
			Fields:  []model.FormField{{Name: "content", Type: model.FieldTextarea, Label: "Content to Process", Required: true}},
			Actions: []model.ComponentAction{{Name: "process", Type: "submit", Endpoint: target}},
		}}
	case intelligence.WPMediaLibrary:
		return []model.UIComponent{{
			Type: "form",
			Name: f.ID + "-media",
			Fields: []model.FormField{
				{Name: "auto-process", Type: model.FieldCheckbox, Label: "Auto-process uploads"},
				{Name: "quality", Type: model.FieldSelect, Label: "Processing Quality", Options: []model.FieldOption{
					{Label: "High", Value: "high"},
					{Label: "Medium", Value: "medium"},
					{Label: "Low", Value: "low"},
				}},
			},
			Actions: []model.ComponentAction{{Name: "save-settings", Type: "submit"}},
		}}
	case intelligence.WPAdminPage:
		// The plugin's main page already is the dashboard.
		if len(endpoints) == 0 {
			return nil
		}
	}
	return featureUI(f.ID, f.Integration.Type, endpoints)
}

// wordpressCategoryFeatures maps parse-time categories onto the WordPress
// feature templates.
func wordpressCategoryFeatures(api *model.ParsedAPI, d *apiData) []model.PlatformFeature {
	var features []model.PlatformFeature
	var rest []string

	for _, g := range groupByCategory(api) {
		eps := endpointsByID(d.Endpoints, g.Endpoints)
		target := g.Endpoints[0]
		switch g.Name {
		case "translation":
			features = append(features, model.PlatformFeature{
				Name:           "Content Translation",
				Description:    "Translate posts, pages, and custom content using " + d.Name,
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface: []model.UIComponent{{
					Type: "form",
					Name: "content-translation",
					Fields: []model.FormField{
						{Name: "contentType", Type: model.FieldSelect, Label: "Content Type", Required: true, Options: []model.FieldOption{
							{Label: "Posts", Value: "post"},
							{Label: "Pages", Value: "page"},
							{Label: "Custom Post Types", Value: "custom"},
						}},
						{Name: "sourceLanguage", Type: model.FieldSelect, Label: "Source Language", Required: true, Options: languages()},
						{Name: "targetLanguages", Type: model.FieldSelect, Label: "Target Languages", Required: true, Options: languages()},
						{Name: "includeExcerpts", Type: model.FieldCheckbox, Label: "Include Excerpts"},
						{Name: "includeMetaFields", Type: model.FieldCheckbox, Label: "Include Custom Fields"},
					},
					Actions: []model.ComponentAction{{Name: "translate", Type: "submit", Endpoint: target}},
				}},
			})
		case "language-support":
			features = append(features, model.PlatformFeature{
				Name:           "Language Management",
				Description:    "Manage supported languages and translation preferences",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface:  featureUI("language-settings", intelligence.IntegrationUI, eps),
			})
		case "document-processing":
			features = append(features, model.PlatformFeature{
				Name:           "Bulk Translation",
				Description:    "Translate multiple posts, pages, or content in bulk",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface: []model.UIComponent{{
					Type: "form",
					Name: "bulk-translation",
					Fields: []model.FormField{
						{Name: "contentSelection", Type: model.FieldSelect, Label: "Content to Translate", Required: true, Options: []model.FieldOption{
							{Label: "All Posts", Value: "all_posts"},
							{Label: "Selected Category", Value: "category"},
							{Label: "Tagged Content", Value: "tagged"},
							{Label: "Date Range", Value: "date_range"},
						}},
						{Name: "targetLanguages", Type: model.FieldSelect, Label: "Target Languages", Required: true, Options: languages()},
						{Name: "batchSize", Type: model.FieldNumber, Label: "Batch Size"},
					},
					Actions: []model.ComponentAction{{
						Name:                "startBulkTranslation",
						Type:                "submit",
						Endpoint:            target,
						ConfirmationMessage: "This will translate multiple items. Continue?",
					}},
				}},
			})
		case "authentication":
			features = append(features, model.PlatformFeature{
				Name:           "API Authentication",
				Description:    "Manage API authentication and connection status",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface:  featureUI("auth-settings", intelligence.IntegrationUI, eps),
			})
		default:
			rest = append(rest, g.Endpoints...)
		}
	}

	if f, ok := operationsFeature(d, rest, model.ImplementationAdminUI); ok {
		features = append(features, f)
	}
	return features
}

func wordpressConfig(d *apiData, features []model.PlatformFeature, opts Options) map[string]any {
	phpVersion, wpVersion := wpMinPHP, wpMinWordPress
	extensions := []string{"curl", "json"}
	if opts.WordPress != nil && opts.SelectedFeatures != nil {
		for _, f := range opts.WordPress.Features {
			if !opts.selected(f.ID) {
				continue
			}
			phpVersion = maxVersion(phpVersion, f.PHP.MinVersion)
			wpVersion = maxVersion(wpVersion, f.Compatibility.MinVersion)
			extensions = append(extensions, f.PHP.Extensions...)
		}
	}
	slices.Sort(extensions)
	extensions = slices.Compact(extensions)

	recommended := []string{}
	if mentionsLanguages(features) {
		recommended = append(recommended, "WPML", "Polylang")
	}

	endpoints := make([]map[string]any, 0, len(d.Endpoints))
	for _, e := range d.Endpoints {
		endpoints = append(endpoints, map[string]any{
			"id":              e.ID,
			"wordpressAction": "wp_ajax_" + d.Snake + "_" + e.PHPName,
			"capability":      "edit_posts",
		})
	}

	cfg := map[string]any{
		"phpVersion":         phpVersion + "+",
		"wordpressVersion":   wpVersion + "+",
		"phpExtensions":      extensions,
		"requiredPlugins":    []string{},
		"recommendedPlugins": recommended,
		"permissions": map[string]string{
			"manage_options": "Required for plugin settings",
			"edit_posts":     "Required to run API operations",
		},
		"hooks": map[string]string{
			"activation":   "Default options and request log table",
			"deactivation": "Unschedules the log cleanup",
			"uninstall":    "Removes options and the request log table",
		},
		"endpoints":          endpoints,
		"auth":               d.Auth.config(),
		"authPlaceholder":    d.Auth.Placeholder,
		"baseUrl":            d.BaseURL,
		"baseUrlPlaceholder": d.BaseURLPlaceholder,
	}
	if wi := opts.WordPress; wi != nil {
		cfg["wordpressContext"] = wi.Context
		cfg["integrationStrategy"] = wi.Strategy
		cfg["securityConsiderations"] = wi.Security
	}
	return cfg
}

// maxVersion compares dotted numeric versions such as "5.0" and "4.9".
func maxVersion(a, b string) string {
	if b == "" {
		return a
	}
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < max(len(pa), len(pb)); i++ {
		var x, y int
		if i < len(pa) {
			x, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			y, _ = strconv.Atoi(pb[i])
		}
		if x != y {
			if y > x {
				return b
			}
			return a
		}
	}
	return a
}
