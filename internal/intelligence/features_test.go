package intelligence

import (
	"testing"

	"github.com/kolah/plugforge/internal/model"
	"github.com/stretchr/testify/require"
)

func mixedAPI() *model.ParsedAPI {
	return &model.ParsedAPI{
		Name: "Mixed",
		Endpoints: []model.APIEndpoint{
			endpoint(model.MethodPost, "/translate"),
			endpoint(model.MethodPost, "/images/upscale"),
			endpoint(model.MethodGet, "/widgets"),
		},
	}
}

func TestSynthesizeForPurpose(t *testing.T) {
	tests := []struct {
		name     string
		purpose  string
		expected []string
	}{
		{
			name:     "known purpose phrase",
			purpose:  "Language Translation Service",
			expected: []string{FeatureTextTranslation, FeatureLanguageDetection},
		},
		{
			name:     "phrase match ignores case",
			purpose:  "image enhancement and processing api",
			expected: []string{FeatureImageSelection, FeatureBatchProcessing, FeatureQualitySettings},
		},
		{
			name:     "keywords in free text",
			purpose:  "Translate my product catalogue",
			expected: []string{FeatureTextTranslation, FeatureLanguageDetection},
		},
		{
			name:     "general integration phrase",
			purpose:  "Mixed Integration",
			expected: []string{FeatureAPIIntegration},
		},
		{
			name:     "unrecognised text keeps detected primary",
			purpose:  "Something else entirely",
			expected: []string{FeatureImageSelection, FeatureBatchProcessing, FeatureQualitySettings},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, featureIDs(SynthesizeForPurpose(mixedAPI(), tt.purpose)))
		})
	}
}

func TestSynthesizeFeaturesMissingBucket(t *testing.T) {
	api := mixedAPI()
	features := SynthesizeFeatures(api, CategoryTranslation, CategorizeEndpoints(nil))

	require.Len(t, features, 2)
	for _, f := range features {
		require.NotNil(t, f.Endpoints)
		require.Empty(t, f.Endpoints)
	}
}

func TestSynthesizeFeaturesDoNotShareEndpointSlices(t *testing.T) {
	api := mixedAPI()
	features := SynthesizeFeatures(api, CategoryImageProcessing, CategorizeEndpoints(api.Endpoints))
	require.Len(t, features, 3)

	features[0].Endpoints[0] = "changed"
	require.Equal(t, "POST /images/upscale", features[1].Endpoints[0])
	require.Equal(t, "POST /images/upscale", features[2].Endpoints[0])
}

func TestIntelligenceClone(t *testing.T) {
	in := Analyze(mixedAPI())
	clone := in.Clone()
	require.Equal(t, in, clone)

	clone.SuggestedFeatures[0].Endpoints[0] = "changed"
	clone.FocusAreas[0].Endpoints = append(clone.FocusAreas[0].Endpoints, "extra")
	clone.EndpointCategories[0].Endpoints[0].ID = "changed"

	require.NotEqual(t, "changed", in.SuggestedFeatures[0].Endpoints[0])
	require.Len(t, in.FocusAreas[0].Endpoints, 1)
	require.NotEqual(t, "changed", in.EndpointCategories[0].Endpoints[0].ID)
}
