package platform

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/templates"
)

const shopifyAPIVersion = "2024-01"

// ShopifyTransformer renders a Remix based embedded Shopify admin app.
type ShopifyTransformer struct {
	engine templates.Engine
}

func (t *ShopifyTransformer) Kind() Kind {
	return Shopify
}

func (t *ShopifyTransformer) Transform(api *model.ParsedAPI, opts Options) (*model.PlatformTransformation, error) {
	d := newAPIData(api)

	features := []model.PlatformFeature{{
		Name:           SettingsFeatureName,
		Description:    "Configure " + d.Name + " API credentials and settings",
		APIEndpoints:   []string{},
		Implementation: model.ImplementationAdminUI,
		UserInterface:  settingsForm(api),
	}}
	if opts.hasSession() {
		features = append(features, sessionFeatures(d, opts, shopifyImplementation)...)
	} else {
		features = append(features, shopifyCategoryFeatures(api, d)...)
	}

	scopes := shopifyScopes(features)
	data := bundleData{
		API:      d,
		Features: features,
		Scopes:   scopes,
		EnvKey:   d.EnvPrefix + "_API_KEY",
	}
	for _, f := range features {
		if f.Implementation == model.ImplementationWebhook {
			data.Webhooks = append(data.Webhooks, f)
		}
	}

	appConfig, err := shopifyAppTOML(d, scopes)
	if err != nil {
		return nil, err
	}

	files := []file{
		{"package.json", "shopify/package.json", model.FileTypeConfig, "json", data},
		{"app/shopify.server.js", "shopify/shopify.server.js", model.FileTypeAPI, "javascript", data},
		{"app/db.server.js", "shopify/db.server.js", model.FileTypeAPI, "javascript", data},
		{"app/services/api-service.js", "shopify/api-service.js", model.FileTypeAPI, "javascript", data},
		{"app/routes/webhooks.jsx", "shopify/webhooks.jsx", model.FileTypeAPI, "javascript", data},
	}
	for _, f := range features {
		if f.Implementation != model.ImplementationAdminUI {
			continue
		}
		fd := data.forFeature(f)
		files = append(files, file{"app/routes/app." + fd.FeatureSlug + ".jsx", "shopify/route.jsx", model.FileTypeComponent, "javascript", fd})
	}
	files = append(files, file{"prisma/schema.prisma", "shopify/schema.prisma", model.FileTypeSchema, "prisma", data})

	rendered, err := render(t.engine, files)
	if err != nil {
		return nil, err
	}
	code := append([]model.CodeFile{{
		Path:     "shopify.app.toml",
		Content:  appConfig,
		Type:     model.FileTypeConfig,
		Language: "toml",
	}}, rendered...)

	docs, err := t.engine.Execute("shopify/documentation.md", data)
	if err != nil {
		return nil, err
	}

	return &model.PlatformTransformation{
		Platform:      string(Shopify),
		Features:      features,
		CodeFiles:     code,
		Configuration: shopifyConfig(d, scopes, data.Webhooks),
		Documentation: docs,
	}, nil
}

func shopifyImplementation(it intelligence.IntegrationType) model.Implementation {
	if it == intelligence.IntegrationWorkflow {
		return model.ImplementationWebhook
	}
	return model.ImplementationAdminUI
}

// shopifyCategoryFeatures maps parse-time categories onto the Shopify
// feature templates. Endpoints of unmapped categories end up in one
// operations feature.
func shopifyCategoryFeatures(api *model.ParsedAPI, d *apiData) []model.PlatformFeature {
	var features []model.PlatformFeature
	var rest []string

	for _, g := range groupByCategory(api) {
		eps := endpointsByID(d.Endpoints, g.Endpoints)
		target := g.Endpoints[0]
		switch g.Name {
		case "translation":
			features = append(features, model.PlatformFeature{
				Name:           "Product Translation",
				Description:    "Translate product titles, descriptions, and metadata",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface: []model.UIComponent{{
					Type: "form",
					Name: "product-translation",
					Fields: []model.FormField{
						{Name: "sourceLanguage", Type: model.FieldSelect, Label: "Source Language", Required: true, Options: languages()},
						{Name: "targetLanguages", Type: model.FieldSelect, Label: "Target Languages", Required: true, Options: languages()},
						{Name: "includeDescriptions", Type: model.FieldCheckbox, Label: "Include Product Descriptions"},
						{Name: "includeMetafields", Type: model.FieldCheckbox, Label: "Include Metafields"},
					},
					Actions: []model.ComponentAction{{Name: "translate", Type: "submit", Endpoint: target}},
				}},
			})
		case "language-support":
			features = append(features, model.PlatformFeature{
				Name:           "Language Management",
				Description:    "Manage supported languages and translation settings",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface:  featureUI("language-settings", intelligence.IntegrationUI, eps),
			})
		case "document-processing":
			features = append(features, model.PlatformFeature{
				Name:           "Bulk Translation",
				Description:    "Translate multiple products or collections at once",
				APIEndpoints:   g.Endpoints,
				Implementation: model.ImplementationAdminUI,
				UserInterface: []model.UIComponent{{
					Type: "form",
					Name: "bulk-translation",
					Fields: []model.FormField{
						{Name: "productSelection", Type: model.FieldSelect, Label: "Products to Translate", Required: true, Options: []model.FieldOption{
							{Label: "All Products", Value: "all"},
							{Label: "Selected Collection", Value: "collection"},
							{Label: "Tagged Products", Value: "tagged"},
						}},
						{Name: "targetLanguages", Type: model.FieldSelect, Label: "Target Languages", Required: true, Options: languages()},
					},
					Actions: []model.ComponentAction{{
						Name:                "startBulkTranslation",
						Type:                "submit",
						Endpoint:            target,
						ConfirmationMessage: "This will translate multiple products. Continue?",
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

// shopifyScopes requests the translation scopes only when a feature works
// with languages.
func shopifyScopes(features []model.PlatformFeature) []string {
	scopes := []string{"read_products", "write_products"}
	if mentionsLanguages(features) {
		scopes = append(scopes, "read_translations", "write_translations")
	}
	return scopes
}

type shopifyApp struct {
	Name           string `toml:"name"`
	ClientID       string `toml:"client_id"`
	ApplicationURL string `toml:"application_url"`
	Embedded       bool   `toml:"embedded"`

	AccessScopes struct {
		Scopes string `toml:"scopes"`
	} `toml:"access_scopes"`

	Auth struct {
		RedirectURLs []string `toml:"redirect_urls"`
	} `toml:"auth"`

	Webhooks struct {
		APIVersion string `toml:"api_version"`
	} `toml:"webhooks"`

	POS struct {
		Embedded bool `toml:"embedded"`
	} `toml:"pos"`

	Build struct {
		AutomaticallyUpdateURLsOnDev bool   `toml:"automatically_update_urls_on_dev"`
		DevStoreURL                  string `toml:"dev_store_url"`
	} `toml:"build"`
}

func shopifyAppTOML(d *apiData, scopes []string) (string, error) {
	var app shopifyApp
	app.Name = d.Slug + "-integration"
	app.ClientID = "your-client-id"
	app.ApplicationURL = "https://your-app-url.com"
	app.Embedded = true
	app.AccessScopes.Scopes = strings.Join(scopes, ",")
	app.Auth.RedirectURLs = []string{"https://your-app-url.com/auth/callback"}
	app.Webhooks.APIVersion = shopifyAPIVersion
	app.Build.AutomaticallyUpdateURLsOnDev = true
	app.Build.DevStoreURL = "your-dev-store.myshopify.com"

	b, err := toml.Marshal(app)
	if err != nil {
		return "", fmt.Errorf("encoding shopify.app.toml: %w", err)
	}
	return "# Shopify app configuration for " + d.Name + "\n" + string(b), nil
}

func webhookTopics(webhooks []model.PlatformFeature) []string {
	topics := []string{"app/uninstalled"}
	if len(webhooks) > 0 {
		topics = append(topics, "products/update")
	}
	return topics
}

func shopifyConfig(d *apiData, scopes []string, webhooks []model.PlatformFeature) map[string]any {
	return map[string]any{
		"appName":            d.Name + " Integration",
		"requiredScopes":     scopes,
		"webhooks":           webhookTopics(webhooks),
		"extensionPoints":    []string{"admin_navigation"},
		"apiVersion":         shopifyAPIVersion,
		"auth":               d.Auth.config(),
		"authPlaceholder":    d.Auth.Placeholder,
		"baseUrl":            d.BaseURL,
		"baseUrlPlaceholder": d.BaseURLPlaceholder,
	}
}
