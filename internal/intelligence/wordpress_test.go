package intelligence

import (
	"fmt"
	"testing"

	"github.com/kolah/plugforge/internal/model"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeForWordPressTranslation(t *testing.T) {
	api := &model.ParsedAPI{
		Name:        "Lingo",
		Description: "Translation as a service",
		Endpoints: []model.APIEndpoint{
			endpoint(model.MethodPost, "/translate"),
			endpoint(model.MethodGet, "/languages"),
		},
	}

	wi := AnalyzeForWordPress(api)

	require.Equal(t, WPCategoryTranslation, wi.PrimaryCategory)
	require.Equal(t, "Translation Service API", wi.DetectedPurpose)
	require.InDelta(t, 0.9, wi.Confidence, 1e-9)

	require.Equal(t, []string{
		"wp-post-translation",
		"wp-bulk-translation",
		"wp-general-integration",
		FeatureWPAdminDashboard,
	}, wordpressFeatureIDs(wi.Features))

	post := wi.Feature("wp-post-translation")
	require.Equal(t, []string{"POST /translate"}, post.Endpoints)
	require.Equal(t, WPGutenbergBlock, post.WordPress.Type)
	require.Equal(t, "translate-button", post.WordPress.Trigger)
	require.Equal(t, "5.0", post.Compatibility.MinVersion)
	require.False(t, post.Enabled)

	generic := wi.Feature("wp-general-integration")
	require.Equal(t, "General Integration", generic.Name)
	require.Equal(t, []string{"admin_menu", "wp_ajax_general"}, generic.WordPress.HookPoints)

	dashboard := wi.Feature(FeatureWPAdminDashboard)
	require.True(t, dashboard.Required)
	require.True(t, dashboard.Enabled)
	require.Equal(t, RatingLow, dashboard.EstimatedComplexity)
	require.Equal(t, "Centralized dashboard for managing Lingo integration settings and features", dashboard.Description)

	require.Equal(t, UseCaseContentManagement, wi.Context.PrimaryUseCase)
	require.Equal(t, PluginTypeContentEnhancement, wi.Context.SuggestedPluginType)
	require.True(t, wi.Context.MultisiteCompatible)
	require.Equal(t, RatingLow, wi.Context.PerformanceImpact)

	require.Equal(t, WPGutenbergBlock, wi.Strategy.Primary)
	require.Equal(t, []WPIntegrationType{WPAdminPage, WPShortcode}, wi.Strategy.Secondary)
	require.True(t, wi.Strategy.Caching)
	require.False(t, wi.Strategy.BackgroundProcessing)
	require.True(t, wi.Strategy.APIRateLimit)

	require.Len(t, wi.Security, 3)
}

func TestAnalyzeForWordPressImages(t *testing.T) {
	api := &model.ParsedAPI{
		Name:           "Pixels",
		Authentication: []model.AuthenticationMethod{{Type: model.AuthTypeAPIKey, Name: "key", ParamName: "X-Key"}},
		Endpoints: []model.APIEndpoint{
			endpoint(model.MethodPost, "/upscale"),
			endpoint(model.MethodPost, "/images/crop"),
			endpoint(model.MethodPost, "/upload"),
		},
	}

	wi := AnalyzeForWordPress(api)

	require.Equal(t, []string{
		"wp-auto-image-enhancement",
		"wp-bulk-image-processing",
		"wp-general-integration",
		FeatureWPAdminDashboard,
	}, wordpressFeatureIDs(wi.Features))
	require.Equal(t, []string{"POST /upscale"}, wi.Feature("wp-auto-image-enhancement").Endpoints)
	require.Equal(t, []string{"curl", "json", "gd"}, wi.Feature("wp-bulk-image-processing").PHP.Extensions)
	require.False(t, wi.Feature("wp-bulk-image-processing").Compatibility.Multisite)

	require.Equal(t, UseCaseMediaProcessing, wi.Context.PrimaryUseCase)
	require.False(t, wi.Context.MultisiteCompatible)
	require.Equal(t, RatingHigh, wi.Context.PerformanceImpact)
	require.Equal(t, WPMediaLibrary, wi.Strategy.Primary)
	require.True(t, wi.Strategy.BackgroundProcessing)
	require.False(t, wi.Strategy.Caching)

	require.Len(t, wi.Security, 4)
	require.Equal(t, "authentication", wi.Security[3].Type)
}

func TestAnalyzeForWordPressEmpty(t *testing.T) {
	wi := AnalyzeForWordPress(&model.ParsedAPI{Name: "Nothing"})

	require.Equal(t, WPCategoryGeneral, wi.PrimaryCategory)
	require.Equal(t, "Nothing Integration", wi.DetectedPurpose)
	require.Equal(t, []string{FeatureWPAdminDashboard}, wordpressFeatureIDs(wi.Features))
	require.Equal(t, UseCaseExternalIntegration, wi.Context.PrimaryUseCase)
	require.Equal(t, WPAdminPage, wi.Strategy.Primary)
	require.Empty(t, wi.Strategy.Secondary)
}

func TestWordPressContextUseCases(t *testing.T) {
	tests := []struct {
		path        string
		useCase     UseCase
		pluginType  PluginType
		wooCommerce bool
	}{
		{"/language/list", UseCaseContentManagement, PluginTypeContentEnhancement, false},
		{"/media", UseCaseMediaProcessing, PluginTypeMediaTool, false},
		{"/users", UseCaseUserManagement, PluginTypeAdminTool, false},
		{"/orders", UseCaseECommerce, PluginTypeIntegration, true},
		{"/weather", UseCaseExternalIntegration, PluginTypeUtility, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ctx := wordpressContext(&model.ParsedAPI{Endpoints: []model.APIEndpoint{endpoint(model.MethodGet, tt.path)}})
			require.Equal(t, tt.useCase, ctx.PrimaryUseCase)
			require.Equal(t, tt.pluginType, ctx.SuggestedPluginType)
			require.Equal(t, tt.wooCommerce, ctx.WooCommerceCompatible)
		})
	}
}

func TestPerformanceImpact(t *testing.T) {
	build := func(n int) *model.ParsedAPI {
		api := &model.ParsedAPI{}
		for i := 0; i < n; i++ {
			api.Endpoints = append(api.Endpoints, endpoint(model.MethodGet, fmt.Sprintf("/things/%d", i)))
		}
		return api
	}

	require.Equal(t, RatingLow, performanceImpact(build(5)))
	require.Equal(t, RatingMedium, performanceImpact(build(6)))
	require.Equal(t, RatingHigh, performanceImpact(build(11)))
}

func wordpressFeatureIDs(features []WordPressFeature) []string {
	var ids []string
	for _, f := range features {
		ids = append(ids, f.ID)
	}
	return ids
}
