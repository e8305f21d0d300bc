package intelligence

import (
	"strings"

	"github.com/kolah/plugforge/internal/model"
)

var (
	phpDefault = PHPRequirements{MinVersion: "7.4", Extensions: []string{"curl", "json"}}
	phpImaging = PHPRequirements{MinVersion: "7.4", Extensions: []string{"curl", "json", "gd"}}
)

// wordpressFeatures emits the templates for every bucket in bucket order and
// always closes with the required admin dashboard.
func wordpressFeatures(api *model.ParsedAPI, categories []EndpointCategory) []WordPressFeature {
	var features []WordPressFeature
	for _, c := range categories {
		features = append(features, categoryFeatures(api, c)...)
	}
	return append(features, adminDashboardFeature(api))
}

func categoryFeatures(api *model.ParsedAPI, c EndpointCategory) []WordPressFeature {
	switch c.Name {
	case WPCategoryTranslation:
		return translationFeatures(c.Endpoints)
	case WPCategoryImageProcessing:
		return imageFeatures(c.Endpoints)
	case WPCategoryTextProcessing:
		return []WordPressFeature{{
			PluginFeature: PluginFeature{
				ID:          "wp-content-enhancement",
				Name:        "AI Content Enhancement",
				Description: "Enhance post content with AI processing and optimization",
				Category:    "content",
				Endpoints:   ids(c.Endpoints, nil),
				Integration: Integration{Type: IntegrationUI, Description: "Content enhancement from Gutenberg editor"},
			},
			WordPress: WordPressIntegration{
				Type:         WPGutenbergBlock,
				HookPoints:   []string{"enqueue_block_editor_assets", "wp_ajax_enhance_content"},
				Capabilities: []string{"edit_posts"},
				Dependencies: []string{"gutenberg"},
				Placement:    "gutenberg-sidebar",
			},
			Compatibility:       WPCompatibility{MinVersion: "5.0", Multisite: true},
			PHP:                 clonePHP(phpDefault),
			Priority:            RatingHigh,
			EstimatedComplexity: RatingMedium,
			UserBenefit:         "Improve content quality and engagement",
		}}
	case WPCategoryDataManagement:
		return []WordPressFeature{{
			PluginFeature: PluginFeature{
				ID:          "wp-data-sync",
				Name:        "External Data Synchronization",
				Description: "Sync WordPress content with external API data sources",
				Category:    "integration",
				Endpoints:   ids(c.Endpoints, nil),
				Integration: Integration{Type: IntegrationWorkflow, Description: "Background data synchronization workflow"},
			},
			WordPress: WordPressIntegration{
				Type:         WPCronJob,
				HookPoints:   []string{"wp_cron", "admin_menu"},
				Capabilities: []string{"manage_options"},
				Dependencies: []string{"wp-cron"},
				Placement:    "tools-menu",
			},
			Compatibility:       WPCompatibility{MinVersion: "4.9", Multisite: true},
			PHP:                 clonePHP(phpDefault),
			Priority:            RatingMedium,
			EstimatedComplexity: RatingHigh,
			UserBenefit:         "Keep content synchronized with external systems",
		}}
	}
	return genericFeatures(api, c)
}

func translationFeatures(endpoints []model.APIEndpoint) []WordPressFeature {
	return []WordPressFeature{
		{
			PluginFeature: PluginFeature{
				ID:          "wp-post-translation",
				Name:        "Post & Page Translation",
				Description: "Translate WordPress posts and pages directly from the editor",
				Category:    "translation",
				Endpoints:   ids(endpoints, pathContains("/translate")),
				Integration: Integration{Type: IntegrationUI, Description: "Gutenberg sidebar integration for content translation"},
			},
			WordPress: WordPressIntegration{
				Type:         WPGutenbergBlock,
				HookPoints:   []string{"enqueue_block_editor_assets", "init"},
				Capabilities: []string{"edit_posts", "edit_pages"},
				Dependencies: []string{"gutenberg"},
				Placement:    "editor-sidebar",
				Trigger:      "translate-button",
			},
			Compatibility:       WPCompatibility{MinVersion: "5.0", Multisite: true},
			PHP:                 clonePHP(phpDefault),
			Priority:            RatingHigh,
			EstimatedComplexity: RatingMedium,
			UserBenefit:         "Streamline multilingual content creation",
		},
		{
			PluginFeature: PluginFeature{
				ID:          "wp-bulk-translation",
				Name:        "Bulk Content Translation",
				Description: "Translate multiple posts, pages, and custom content in batches",
				Category:    "translation",
				Endpoints:   ids(endpoints, nil),
				Integration: Integration{Type: IntegrationBatch, Description: "Bulk processing interface for multiple content items"},
			},
			WordPress: WordPressIntegration{
				Type:         WPAdminPage,
				HookPoints:   []string{"admin_menu", "wp_ajax_bulk_translate"},
				Capabilities: []string{"manage_options", "edit_posts"},
				Dependencies: []string{"wp-cron"},
				Placement:    "tools-menu",
			},
			Compatibility:       WPCompatibility{MinVersion: "4.9", Multisite: true},
			PHP:                 clonePHP(phpDefault),
			Priority:            RatingHigh,
			EstimatedComplexity: RatingHigh,
			UserBenefit:         "Efficiently localize large content volumes",
		},
	}
}

func imageFeatures(endpoints []model.APIEndpoint) []WordPressFeature {
	return []WordPressFeature{
		{
			PluginFeature: PluginFeature{
				ID:          "wp-auto-image-enhancement",
				Name:        "Automatic Image Enhancement",
				Description: "Automatically enhance images upon upload to media library",
				Category:    "media",
				Endpoints:   ids(endpoints, pathContains("/upscale", "/enhance")),
				Integration: Integration{Type: IntegrationWorkflow, Description: "Automated image processing workflow"},
			},
			WordPress: WordPressIntegration{
				Type:         WPMediaLibrary,
				HookPoints:   []string{"wp_handle_upload", "add_attachment"},
				Capabilities: []string{"upload_files"},
				Dependencies: []string{"wp-cron"},
				Trigger:      "automatic",
			},
			Compatibility:       WPCompatibility{MinVersion: "4.7", Multisite: true},
			PHP:                 clonePHP(phpImaging),
			Priority:            RatingHigh,
			EstimatedComplexity: RatingMedium,
			UserBenefit:         "Improve image quality without manual intervention",
		},
		{
			PluginFeature: PluginFeature{
				ID:          "wp-bulk-image-processing",
				Name:        "Bulk Image Processing",
				Description: "Process existing media library images in background batches",
				Category:    "media",
				Endpoints:   ids(endpoints, nil),
				Integration: Integration{Type: IntegrationBatch, Description: "Bulk image processing with progress tracking"},
			},
			WordPress: WordPressIntegration{
				Type:         WPCronJob,
				HookPoints:   []string{"wp_ajax_bulk_process_images", "wp_cron"},
				Capabilities: []string{"manage_options"},
				Dependencies: []string{"wp-cron"},
				Placement:    "media-menu",
			},
			Compatibility:       WPCompatibility{MinVersion: "4.7", Multisite: false},
			PHP:                 clonePHP(phpImaging),
			Priority:            RatingMedium,
			EstimatedComplexity: RatingHigh,
			UserBenefit:         "Optimize entire media library efficiently",
		},
	}
}

func genericFeatures(api *model.ParsedAPI, c EndpointCategory) []WordPressFeature {
	name := c.Name
	title := name
	if title != "" {
		title = strings.ToUpper(title[:1]) + title[1:]
	}

	return []WordPressFeature{{
		PluginFeature: PluginFeature{
			ID:          "wp-" + name + "-integration",
			Name:        title + " Integration",
			Description: "WordPress integration for " + api.Name + " " + name + " functionality",
			Category:    "integration",
			Endpoints:   ids(c.Endpoints, nil),
			Integration: Integration{Type: IntegrationUI, Description: "Integration interface for " + name + " functionality"},
		},
		WordPress: WordPressIntegration{
			Type:         WPAdminPage,
			HookPoints:   []string{"admin_menu", "wp_ajax_" + name},
			Capabilities: []string{"manage_options"},
			Dependencies: []string{},
			Placement:    "main-menu",
		},
		Compatibility:       WPCompatibility{MinVersion: "4.7", Multisite: true},
		PHP:                 clonePHP(phpDefault),
		Priority:            RatingMedium,
		EstimatedComplexity: RatingMedium,
		UserBenefit:         "Access " + api.Name + " " + name + " features from WordPress",
	}}
}

func adminDashboardFeature(api *model.ParsedAPI) WordPressFeature {
	return WordPressFeature{
		PluginFeature: PluginFeature{
			ID:          FeatureWPAdminDashboard,
			Name:        "Plugin Dashboard",
			Description: "Centralized dashboard for managing " + api.Name + " integration settings and features",
			Enabled:     true,
			Required:    true,
			Category:    "admin",
			Endpoints:   []string{},
			Integration: Integration{Type: IntegrationUI, Description: "Administrative dashboard interface"},
		},
		WordPress: WordPressIntegration{
			Type:         WPAdminPage,
			HookPoints:   []string{"admin_menu", "admin_init"},
			Capabilities: []string{"manage_options"},
			Dependencies: []string{},
			Placement:    "main-menu",
		},
		Compatibility:       WPCompatibility{MinVersion: "4.7", Multisite: true},
		PHP:                 PHPRequirements{MinVersion: "7.4", Extensions: []string{}},
		Priority:            RatingHigh,
		EstimatedComplexity: RatingLow,
		UserBenefit:         "Unified control panel for all plugin features",
	}
}

func pathContains(fragments ...string) func(model.APIEndpoint) bool {
	return func(e model.APIEndpoint) bool {
		for _, f := range fragments {
			if strings.Contains(e.Path, f) {
				return true
			}
		}
		return false
	}
}

// ids collects endpoint ids, optionally filtered by keep.
func ids(endpoints []model.APIEndpoint, keep func(model.APIEndpoint) bool) []string {
	result := []string{}
	for _, e := range endpoints {
		if keep == nil || keep(e) {
			result = append(result, e.ID)
		}
	}
	return result
}

func clonePHP(p PHPRequirements) PHPRequirements {
	p.Extensions = append([]string{}, p.Extensions...)
	return p
}
