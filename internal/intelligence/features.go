package intelligence

import (
	"strings"

	"github.com/kolah/plugforge/internal/model"
)

// IntegrationType describes how a feature hooks into the host application.
type IntegrationType string

const (
	IntegrationSelection IntegrationType = "selection"
	IntegrationCanvas    IntegrationType = "canvas"
	IntegrationUI        IntegrationType = "ui"
	IntegrationBatch     IntegrationType = "batch"
	IntegrationWorkflow  IntegrationType = "workflow"
)

type Integration struct {
	Type        IntegrationType `json:"type"`
	Description string          `json:"description"`
}

// PluginFeature is a candidate unit of plugin functionality offered to the
// user for selection.
type PluginFeature struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Enabled     bool        `json:"enabled"`
	Required    bool        `json:"required"`
	Category    string      `json:"category"`
	Endpoints   []string    `json:"endpoints"`
	Integration Integration `json:"integration"`
}

// Feature ids produced by the synthesizer.
const (
	FeatureImageSelection    = "image-selection"
	FeatureBatchProcessing   = "batch-processing"
	FeatureQualitySettings   = "quality-settings"
	FeatureTextTranslation   = "text-translation"
	FeatureLanguageDetection = "language-detection"
	FeatureAPIIntegration    = "api-integration"
	FeatureAuthentication    = "authentication"
)

// SynthesizeFeatures emits the feature template for the primary category and
// appends a required authentication feature when the API has authentication
// endpoints or declares security schemes.
func SynthesizeFeatures(api *model.ParsedAPI, primary string, categories []EndpointCategory) []PluginFeature {
	var features []PluginFeature

	switch primary {
	case CategoryImageProcessing:
		endpoints := endpointsByCategory(categories, CategoryImageProcessing)
		features = append(features,
			PluginFeature{
				ID:          FeatureImageSelection,
				Name:        "Process Selected Images",
				Description: "Apply image processing to selected image layers in Figma",
				Enabled:     true,
				Required:    true,
				Category:    "Core Features",
				Endpoints:   endpoints,
				Integration: Integration{Type: IntegrationSelection, Description: "Works with selected image nodes in Figma"},
			},
			PluginFeature{
				ID:          FeatureBatchProcessing,
				Name:        "Batch Image Processing",
				Description: "Process multiple images at once with progress tracking",
				Enabled:     true,
				Category:    "Productivity",
				Endpoints:   clone(endpoints),
				Integration: Integration{Type: IntegrationBatch, Description: "Processes multiple selected images with progress indicator"},
			},
			PluginFeature{
				ID:          FeatureQualitySettings,
				Name:        "Processing Settings",
				Description: "Adjust processing parameters and preview results",
				Enabled:     true,
				Category:    "Configuration",
				Endpoints:   clone(endpoints),
				Integration: Integration{Type: IntegrationUI, Description: "Settings panel for processing options"},
			},
		)
	case CategoryTranslation:
		endpoints := endpointsByCategory(categories, CategoryTranslation)
		features = append(features,
			PluginFeature{
				ID:          FeatureTextTranslation,
				Name:        "Translate Selected Text",
				Description: "Translate text in selected text layers",
				Enabled:     true,
				Required:    true,
				Category:    "Core Features",
				Endpoints:   endpoints,
				Integration: Integration{Type: IntegrationSelection, Description: "Works with selected text nodes in Figma"},
			},
			PluginFeature{
				ID:          FeatureLanguageDetection,
				Name:        "Auto Language Detection",
				Description: "Automatically detect source language",
				Enabled:     true,
				Category:    "Smart Features",
				Endpoints:   clone(endpoints),
				Integration: Integration{Type: IntegrationWorkflow, Description: "Enhances translation workflow with auto-detection"},
			},
		)
	default:
		features = append(features, PluginFeature{
			ID:          FeatureAPIIntegration,
			Name:        "API Integration",
			Description: "Connect Figma with the API endpoints",
			Enabled:     true,
			Required:    true,
			Category:    "Core Features",
			Endpoints:   api.EndpointIDs(),
			Integration: Integration{Type: IntegrationUI, Description: "General API integration interface"},
		})
	}

	authEndpoints := endpointsByCategory(categories, CategoryAuthentication)
	if len(authEndpoints) > 0 || api.HasAuthentication() {
		features = append(features, PluginFeature{
			ID:          FeatureAuthentication,
			Name:        "API Authentication",
			Description: "Manage API credentials and authentication",
			Enabled:     true,
			Required:    true,
			Category:    "Setup",
			Endpoints:   authEndpoints,
			Integration: Integration{Type: IntegrationUI, Description: "Secure credential management interface"},
		})
	}

	return features
}

// SynthesizeForPurpose re-derives the feature set for a user supplied
// purpose. The purpose is resolved to a category by exact match against the
// known purpose phrases, then by keyword classification of the text, and
// finally falls back to the detected primary category.
func SynthesizeForPurpose(api *model.ParsedAPI, purpose string) []PluginFeature {
	categories := CategorizeEndpoints(api.Endpoints)
	return SynthesizeFeatures(api, CategoryForPurpose(api, purpose, categories), categories)
}

// CategoryForPurpose resolves a free-text purpose to a primary category.
func CategoryForPurpose(api *model.ParsedAPI, purpose string, categories []EndpointCategory) string {
	normalized := strings.TrimSpace(strings.ToLower(purpose))
	for category, phrase := range purposes {
		if strings.ToLower(phrase) == normalized {
			return category
		}
	}
	if normalized == strings.ToLower(api.Name+" Integration") {
		return CategoryGeneral
	}

	if category := ClassifyText(normalized); category != CategoryGeneral {
		return category
	}

	return primaryCategory(focusAreas(categories))
}

func endpointsByCategory(categories []EndpointCategory, name string) []string {
	for _, c := range categories {
		if c.Name == name {
			return c.EndpointIDs()
		}
	}
	return []string{}
}

func clone(ids []string) []string {
	return append([]string{}, ids...)
}
