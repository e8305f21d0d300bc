package intelligence

import (
	"strings"

	"github.com/kolah/plugforge/internal/model"
)

// WordPress endpoint taxonomy. It is coarser than the general classifier and
// only consulted by the WordPress analysis.
const (
	WPCategoryTranslation     = "translation"
	WPCategoryImageProcessing = "image-processing"
	WPCategoryTextProcessing  = "text-processing"
	WPCategoryDataManagement  = "data-management"
	WPCategoryGeneral         = "general"
)

type WPIntegrationType string

const (
	WPAdminPage        WPIntegrationType = "admin-page"
	WPMediaLibrary     WPIntegrationType = "media-library"
	WPGutenbergBlock   WPIntegrationType = "gutenberg-block"
	WPShortcode        WPIntegrationType = "shortcode"
	WPWidget           WPIntegrationType = "widget"
	WPRestEndpoint     WPIntegrationType = "rest-endpoint"
	WPCronJob          WPIntegrationType = "cron-job"
	WPThemeIntegration WPIntegrationType = "theme-integration"
	WPEditorPlugin     WPIntegrationType = "editor-plugin"
)

type Rating string

const (
	RatingHigh   Rating = "high"
	RatingMedium Rating = "medium"
	RatingLow    Rating = "low"
)

type WordPressIntegration struct {
	Type         WPIntegrationType `json:"type"`
	HookPoints   []string          `json:"hookPoints"`
	Capabilities []string          `json:"capabilities"`
	Dependencies []string          `json:"dependencies"`
	Placement    string            `json:"placement,omitempty"`
	Trigger      string            `json:"trigger,omitempty"`
}

type WPCompatibility struct {
	MinVersion string `json:"minVersion"`
	MaxVersion string `json:"maxVersion,omitempty"`
	Multisite  bool   `json:"multisite"`
}

type PHPRequirements struct {
	MinVersion string   `json:"minVersion"`
	Extensions []string `json:"extensions"`
}

type WordPressFeature struct {
	PluginFeature
	WordPress           WordPressIntegration `json:"wordpressIntegration"`
	Compatibility       WPCompatibility      `json:"wpCompatibility"`
	PHP                 PHPRequirements      `json:"phpRequirements"`
	Priority            Rating               `json:"priority"`
	EstimatedComplexity Rating               `json:"estimatedComplexity"`
	UserBenefit         string               `json:"userBenefit"`
}

type UseCase string

const (
	UseCaseContentManagement   UseCase = "content-management"
	UseCaseMediaProcessing     UseCase = "media-processing"
	UseCaseUserManagement      UseCase = "user-management"
	UseCaseECommerce           UseCase = "e-commerce"
	UseCaseExternalIntegration UseCase = "external-integration"
)

type PluginType string

const (
	PluginTypeUtility            PluginType = "utility"
	PluginTypeContentEnhancement PluginType = "content-enhancement"
	PluginTypeMediaTool          PluginType = "media-tool"
	PluginTypeAdminTool          PluginType = "admin-tool"
	PluginTypeIntegration        PluginType = "integration"
)

type WordPressContext struct {
	PrimaryUseCase        UseCase    `json:"primaryUseCase"`
	SuggestedPluginType   PluginType `json:"suggestedPluginType"`
	WooCommerceCompatible bool       `json:"wooCommerceCompatible"`
	MultisiteCompatible   bool       `json:"multisiteCompatible"`
	PerformanceImpact     Rating     `json:"performanceImpact"`
}

type IntegrationStrategy struct {
	Primary              WPIntegrationType   `json:"primary"`
	Secondary            []WPIntegrationType `json:"secondary"`
	BackgroundProcessing bool                `json:"backgroundProcessing"`
	Caching              bool                `json:"caching"`
	APIRateLimit         bool                `json:"apiRateLimit"`
}

type SecurityConsideration struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Implementation string `json:"implementation"`
	Priority       Rating `json:"priority"`
}

// WordPressIntelligence extends the base analysis with WordPress specific
// feature suggestions and integration guidance.
type WordPressIntelligence struct {
	Intelligence
	Context  WordPressContext        `json:"wordpressContext"`
	Features []WordPressFeature      `json:"wordpressFeatures"`
	Strategy IntegrationStrategy     `json:"integrationStrategy"`
	Security []SecurityConsideration `json:"securityConsiderations"`
}

// Feature returns the WordPress feature with the given id, or nil.
func (wi *WordPressIntelligence) Feature(id string) *WordPressFeature {
	for i := range wi.Features {
		if wi.Features[i].ID == id {
			return &wi.Features[i]
		}
	}
	return nil
}

const FeatureWPAdminDashboard = "wp-admin-dashboard"

// AnalyzeForWordPress runs the WordPress flavoured analysis of api.
func AnalyzeForWordPress(api *model.ParsedAPI) *WordPressIntelligence {
	categories := categorizeForWordPress(api.Endpoints)
	wpContext := wordpressContext(api)

	primary := WPCategoryGeneral
	if len(categories) > 0 {
		primary = categories[0].Name
	}

	focus := make([]FocusArea, 0, len(categories))
	for _, c := range categories {
		focus = append(focus, FocusArea{
			Name:        c.Name,
			Description: c.Description,
			Confidence:  0.8,
			Endpoints:   c.EndpointIDs(),
		})
	}

	return &WordPressIntelligence{
		Intelligence: Intelligence{
			DetectedPurpose:    wordpressPurpose(api, primary),
			Confidence:         wordpressConfidence(api, categories),
			PrimaryCategory:    primary,
			SuggestedFeatures:  []PluginFeature{},
			EndpointCategories: categories,
			Recommendations:    []string{},
			FocusAreas:         focus,
		},
		Context:  wpContext,
		Features: wordpressFeatures(api, categories),
		Strategy: integrationStrategy(api, wpContext),
		Security: securityConsiderations(api),
	}
}

func classifyForWordPress(e model.APIEndpoint) string {
	path := strings.ToLower(e.Path)
	name := strings.ToLower(e.Name)

	switch {
	case strings.Contains(path, "translate") || strings.Contains(name, "translate"):
		return WPCategoryTranslation
	case strings.Contains(path, "image") || strings.Contains(path, "upscale") || strings.Contains(name, "image"):
		return WPCategoryImageProcessing
	case strings.Contains(path, "text") || strings.Contains(name, "text"):
		return WPCategoryTextProcessing
	case strings.Contains(path, "data") || strings.Contains(name, "data"):
		return WPCategoryDataManagement
	}
	return WPCategoryGeneral
}

// categorizeForWordPress buckets endpoints in first-seen order. Bucket names
// stay lowercase so they can be used directly in feature ids.
func categorizeForWordPress(endpoints []model.APIEndpoint) []EndpointCategory {
	categories := []EndpointCategory{}
	index := make(map[string]int)

	for _, e := range endpoints {
		name := classifyForWordPress(e)
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			priority := 0.5
			if name == WPCategoryTranslation || name == WPCategoryImageProcessing {
				priority = 1
			}
			categories = append(categories, EndpointCategory{
				Name:        name,
				Description: name + " related functionality",
				Priority:    priority,
			})
		}
		categories[i].Endpoints = append(categories[i].Endpoints, e)
	}

	return categories
}

func wordpressPurpose(api *model.ParsedAPI, primary string) string {
	apiName := strings.ToLower(api.Name)
	switch {
	case strings.Contains(primary, "translation") || strings.Contains(apiName, "translate"):
		return "Translation Service API"
	case strings.Contains(primary, "image") || strings.Contains(apiName, "image"):
		return "Image Processing API"
	case strings.Contains(primary, "text") || strings.Contains(apiName, "text"):
		return "Text Processing API"
	}
	return api.Name + " Integration"
}

func wordpressConfidence(api *model.ParsedAPI, categories []EndpointCategory) float64 {
	c := 0.5
	if len(api.Description) > 10 {
		c += 0.2
	}
	if len(categories) > 0 {
		c += 0.2
	}
	if len(api.Endpoints) > 3 {
		c += 0.1
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

func wordpressContext(api *model.ParsedAPI) WordPressContext {
	var parts []string
	for _, e := range api.Endpoints {
		parts = append(parts, strings.ToLower(e.Path)+" "+strings.ToLower(e.Name))
	}
	patterns := strings.Join(parts, " ")
	has := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(patterns, kw) {
				return true
			}
		}
		return false
	}

	ctx := WordPressContext{
		PrimaryUseCase:      UseCaseExternalIntegration,
		SuggestedPluginType: PluginTypeUtility,
	}

	switch {
	case has("translate", "language"):
		ctx.PrimaryUseCase = UseCaseContentManagement
		ctx.SuggestedPluginType = PluginTypeContentEnhancement
	case has("image", "media", "upscale"):
		ctx.PrimaryUseCase = UseCaseMediaProcessing
		ctx.SuggestedPluginType = PluginTypeMediaTool
	case has("user", "auth"):
		ctx.PrimaryUseCase = UseCaseUserManagement
		ctx.SuggestedPluginType = PluginTypeAdminTool
	case has("product", "order", "payment"):
		ctx.PrimaryUseCase = UseCaseECommerce
		ctx.SuggestedPluginType = PluginTypeIntegration
	}

	ctx.WooCommerceCompatible = ctx.PrimaryUseCase == UseCaseECommerce || has("product")
	ctx.MultisiteCompatible = !has("file", "upload")
	ctx.PerformanceImpact = performanceImpact(api)

	return ctx
}

func performanceImpact(api *model.ParsedAPI) Rating {
	if len(api.Endpoints) > 10 {
		return RatingHigh
	}
	for _, e := range api.Endpoints {
		if strings.Contains(e.Path, "/upload") || strings.Contains(e.Path, "/file") {
			return RatingHigh
		}
	}
	if len(api.Endpoints) > 5 {
		return RatingMedium
	}
	return RatingLow
}

func integrationStrategy(api *model.ParsedAPI, ctx WordPressContext) IntegrationStrategy {
	s := IntegrationStrategy{
		Primary:      WPAdminPage,
		Secondary:    []WPIntegrationType{},
		APIRateLimit: true,
	}

	switch ctx.PrimaryUseCase {
	case UseCaseContentManagement:
		s.Primary = WPGutenbergBlock
		s.Secondary = []WPIntegrationType{WPAdminPage, WPShortcode}
	case UseCaseMediaProcessing:
		s.Primary = WPMediaLibrary
		s.Secondary = []WPIntegrationType{WPAdminPage, WPCronJob}
	case UseCaseUserManagement:
		s.Secondary = []WPIntegrationType{WPRestEndpoint}
	case UseCaseECommerce:
		s.Secondary = []WPIntegrationType{WPShortcode, WPWidget}
	}

	s.BackgroundProcessing = ctx.PerformanceImpact == RatingHigh || len(api.Endpoints) > 5
	for _, e := range api.Endpoints {
		if e.Method == model.MethodGet {
			s.Caching = true
			break
		}
	}

	return s
}

func securityConsiderations(api *model.ParsedAPI) []SecurityConsideration {
	considerations := []SecurityConsideration{
		{
			Type:           "capability-check",
			Description:    "Implement proper WordPress capability checks for all admin functions",
			Implementation: "current_user_can() checks before any admin operations",
			Priority:       RatingHigh,
		},
		{
			Type:           "nonce-verification",
			Description:    "Use WordPress nonces for all AJAX requests and form submissions",
			Implementation: "wp_nonce_field() and wp_verify_nonce() for security",
			Priority:       RatingHigh,
		},
		{
			Type:           "data-validation",
			Description:    "Sanitize and validate all user input and API responses",
			Implementation: "sanitize_text_field(), wp_kses(), and custom validation",
			Priority:       RatingHigh,
		},
	}

	if api.HasAuthentication() {
		considerations = append(considerations, SecurityConsideration{
			Type:           "authentication",
			Description:    "Securely store and handle API credentials",
			Implementation: "Use WordPress options API with proper encryption",
			Priority:       RatingHigh,
		})
	}

	return considerations
}
