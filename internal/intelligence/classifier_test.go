package intelligence

import (
	"fmt"
	"testing"

	"github.com/kolah/plugforge/internal/model"
	"github.com/stretchr/testify/require"
)

func endpoint(method model.Method, path string, tags ...string) model.APIEndpoint {
	return model.APIEndpoint{
		ID:     string(method) + " " + path,
		Name:   string(method) + " " + path,
		Method: method,
		Path:   path,
		Tags:   tags,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/translate-image", CategoryImageProcessing},
		{"/photos/{id}/resize", CategoryImageProcessing},
		{"/translate", CategoryTranslation},
		{"/locales", CategoryTranslation},
		{"/auth/login", CategoryAuthentication},
		{"/tokens", CategoryAuthentication},
		{"/documents", CategoryDocumentProcessing},
		{"/pdf/merge", CategoryDocumentProcessing},
		{"/users", CategoryUserManagement},
		{"/accounts/{id}", CategoryUserManagement},
		{"/predict", CategoryAIML},
		{"/widgets", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(endpoint(model.MethodPost, tt.path)))
		})
	}
}

func TestClassifyUsesDescription(t *testing.T) {
	e := endpoint(model.MethodPost, "/jobs")
	e.Description = "Upscale a picture"
	require.Equal(t, CategoryImageProcessing, Classify(e))
}

func TestCategoryPriority(t *testing.T) {
	tests := []struct {
		category string
		count    int
		expected float64
	}{
		{CategoryImageProcessing, 1, 9.2},
		{CategoryTranslation, 5, 9},
		{CategoryAIML, 20, 9},
		{CategoryGeneral, 10, 5},
		{CategoryAuthentication, 0, 4},
		{"Unknown", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			require.InDelta(t, tt.expected, CategoryPriority(tt.category, tt.count), 1e-9)
		})
	}
}

func TestCategorizeEndpointsOrdering(t *testing.T) {
	endpoints := []model.APIEndpoint{
		endpoint(model.MethodGet, "/users"),
		endpoint(model.MethodPost, "/translate"),
		endpoint(model.MethodGet, "/widgets"),
		endpoint(model.MethodPost, "/images/upscale"),
		endpoint(model.MethodGet, "/users/{id}"),
	}

	categories := CategorizeEndpoints(endpoints)

	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{
		CategoryImageProcessing,
		CategoryTranslation,
		CategoryUserManagement,
		CategoryGeneral,
	}, names)
	require.Equal(t, []string{"GET /users", "GET /users/{id}"}, categories[2].EndpointIDs())
}

func TestCategorizeEndpointsEmpty(t *testing.T) {
	categories := CategorizeEndpoints(nil)
	require.NotNil(t, categories)
	require.Empty(t, categories)
}

func TestAnalyzeTranslationScenario(t *testing.T) {
	api := &model.ParsedAPI{
		Name:      "Translator",
		Endpoints: []model.APIEndpoint{endpoint(model.MethodGet, "/translate", "translation")},
	}

	in := Analyze(api)

	require.Len(t, in.EndpointCategories, 1)
	require.Equal(t, CategoryTranslation, in.EndpointCategories[0].Name)
	require.Len(t, in.EndpointCategories[0].Endpoints, 1)
	require.Equal(t, CategoryTranslation, in.PrimaryCategory)
	require.Equal(t, "Language Translation Service", in.DetectedPurpose)
	require.InDelta(t, 0.82*0.6+0.4, in.Confidence, 1e-9)

	require.Len(t, in.SuggestedFeatures, 2)
	require.Equal(t, FeatureTextTranslation, in.SuggestedFeatures[0].ID)
	require.True(t, in.SuggestedFeatures[0].Required)
	require.Equal(t, FeatureLanguageDetection, in.SuggestedFeatures[1].ID)
	require.False(t, in.SuggestedFeatures[1].Required)
	require.Nil(t, in.Feature(FeatureAuthentication))

	require.Equal(t, []string{
		"Include language auto-detection for better user experience",
		"Add support for batch translation of multiple text layers",
		"Consider caching translations to improve performance",
	}, in.Recommendations)
}

func TestAnalyzeAuthenticationAppendedToGeneralAPI(t *testing.T) {
	api := &model.ParsedAPI{
		Name: "Widgets",
		Authentication: []model.AuthenticationMethod{
			{Type: model.AuthTypeAPIKey, Name: "apiKeyAuth", ParamName: "X-API-Key", Location: "header"},
		},
		Endpoints: []model.APIEndpoint{endpoint(model.MethodPost, "/auth/session")},
	}
	for i := 1; i <= 10; i++ {
		api.Endpoints = append(api.Endpoints, endpoint(model.MethodGet, fmt.Sprintf("/widgets/%d", i)))
	}

	in := Analyze(api)

	require.Equal(t, CategoryGeneral, in.PrimaryCategory)
	require.Equal(t, "Widgets Integration", in.DetectedPurpose)
	require.Len(t, in.SuggestedFeatures, 2)
	require.Equal(t, FeatureAPIIntegration, in.SuggestedFeatures[0].ID)
	require.Len(t, in.SuggestedFeatures[0].Endpoints, 11)

	auth := in.Feature(FeatureAuthentication)
	require.NotNil(t, auth)
	require.Equal(t, "API Authentication", auth.Name)
	require.True(t, auth.Required)
	require.Equal(t, []string{"POST /auth/session"}, auth.Endpoints)

	require.Equal(t, []string{
		"Implement secure API key storage and management",
		"Group endpoints by functionality for better organization",
	}, in.Recommendations)
}

func TestAnalyzeAuthenticationFromSchemesOnly(t *testing.T) {
	api := &model.ParsedAPI{
		Name:           "Images",
		Authentication: []model.AuthenticationMethod{{Type: model.AuthTypeHTTP, Name: "bearer", Scheme: "bearer"}},
		Endpoints:      []model.APIEndpoint{endpoint(model.MethodPost, "/upscale")},
	}

	in := Analyze(api)

	require.Equal(t, CategoryImageProcessing, in.PrimaryCategory)
	require.Equal(t, []string{
		FeatureImageSelection,
		FeatureBatchProcessing,
		FeatureQualitySettings,
		FeatureAuthentication,
	}, featureIDs(in.SuggestedFeatures))

	auth := in.Feature(FeatureAuthentication)
	require.NotNil(t, auth.Endpoints)
	require.Empty(t, auth.Endpoints)
}

func TestAnalyzeZeroEndpoints(t *testing.T) {
	in := Analyze(&model.ParsedAPI{Name: "Empty"})

	require.Equal(t, CategoryGeneral, in.PrimaryCategory)
	require.Equal(t, 0.3, in.Confidence)
	require.Empty(t, in.FocusAreas)
	require.Len(t, in.SuggestedFeatures, 1)
	require.Equal(t, FeatureAPIIntegration, in.SuggestedFeatures[0].ID)
	require.NotNil(t, in.SuggestedFeatures[0].Endpoints)
	require.Empty(t, in.SuggestedFeatures[0].Endpoints)
}

func TestConfidenceBounds(t *testing.T) {
	paths := []string{"/translate", "/images", "/users", "/auth", "/widgets", "/predict", "/documents"}

	for n := 0; n <= 40; n++ {
		api := &model.ParsedAPI{Name: "Bounds"}
		for i := 0; i < n; i++ {
			api.Endpoints = append(api.Endpoints, endpoint(model.MethodGet, fmt.Sprintf("%s/%d", paths[i%len(paths)], i)))
		}
		in := Analyze(api)
		require.GreaterOrEqual(t, in.Confidence, 0.0, "n=%d", n)
		require.LessOrEqual(t, in.Confidence, 0.95, "n=%d", n)
		for _, f := range in.FocusAreas {
			require.LessOrEqual(t, f.Confidence, 0.9)
		}
	}
}

func TestFocusAreasSortedByConfidence(t *testing.T) {
	api := &model.ParsedAPI{Endpoints: []model.APIEndpoint{
		endpoint(model.MethodGet, "/widgets"),
		endpoint(model.MethodGet, "/users"),
		endpoint(model.MethodPost, "/translate"),
	}}

	in := Analyze(api)
	require.Len(t, in.FocusAreas, 3)
	for i := 1; i < len(in.FocusAreas); i++ {
		require.GreaterOrEqual(t, in.FocusAreas[i-1].Confidence, in.FocusAreas[i].Confidence)
	}
	require.Equal(t, CategoryTranslation, in.FocusAreas[0].Name)
}

func featureIDs(features []PluginFeature) []string {
	var ids []string
	for _, f := range features {
		ids = append(ids, f.ID)
	}
	return ids
}
