package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
)

func translationAPI() *model.ParsedAPI {
	return &model.ParsedAPI{
		Name: "Lingo",
		Endpoints: []model.APIEndpoint{
			{ID: "translateText", Name: "Translate text", Method: model.MethodPost, Path: "/translate"},
			{ID: "detectLanguage", Name: "Detect language", Method: model.MethodPost, Path: "/detect"},
		},
	}
}

func sequentialIDs() Option {
	n := 0
	var mu sync.Mutex
	return WithIDGenerator(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("s%02d", n)
	})
}

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(arbor.NewLogger(), sequentialIDs())
}

func ptr[T any](v T) *T {
	return &v
}

func TestStartAnalysisDefaults(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	require.Equal(t, "s01", s.ID)
	require.Equal(t, StatusConfirmingPurpose, s.Status)
	require.Equal(t, "Language Translation Service", s.UserChoices.ConfirmedPurpose)
	require.Equal(t, []string{intelligence.FeatureTextTranslation, intelligence.FeatureLanguageDetection}, s.UserChoices.SelectedFeatures)
	require.Empty(t, s.UserChoices.FeatureCustomizations)

	prefs := s.UserChoices.UIPreferences
	require.Equal(t, UIStyleFullFeatured, prefs.Style)
	require.Equal(t, []string{"translateText", "detectLanguage"}, prefs.PrimaryEndpoints)

	require.Equal(t, AdvancedSettings{
		AuthenticationStrategy:  AuthPluginManaged,
		ErrorHandling:           ErrorHandlingGraceful,
		PerformanceOptimization: true,
	}, s.UserChoices.AdvancedSettings)

	require.Equal(t, "Lingo", s.RefinedSpec.Name)
	require.Equal(t, "Language Translation Service", s.RefinedSpec.Description)
	require.Equal(t, []string{"translateText", "detectLanguage"}, s.RefinedSpec.FocusedEndpoints)
	require.Len(t, s.RefinedSpec.EnabledFeatures, 2)
	require.Equal(t, UIStyleFullFeatured, s.RefinedSpec.UIConfiguration.Layout)
	require.Len(t, s.RefinedSpec.UIConfiguration.PrimaryActions, 2)
	require.Equal(t, []CategorySummary{{
		Name:        intelligence.CategoryTranslation,
		Description: intelligence.CategoryDescription(intelligence.CategoryTranslation),
		Endpoints:   2,
	}}, s.RefinedSpec.UIConfiguration.Categories)
}

func TestStartAnalysisWithoutEndpoints(t *testing.T) {
	s := newTestAnalyzer().StartAnalysis(&model.ParsedAPI{Name: "Empty"})

	require.Equal(t, intelligence.CategoryGeneral, s.Intelligence.PrimaryCategory)
	require.Equal(t, []string{intelligence.FeatureAPIIntegration}, s.UserChoices.SelectedFeatures)
	require.Empty(t, s.RefinedSpec.FocusedEndpoints)
}

func TestPrimaryEndpointsAreCapped(t *testing.T) {
	api := &model.ParsedAPI{Name: "Many"}
	for i := range 8 {
		api.Endpoints = append(api.Endpoints, model.APIEndpoint{
			ID:     fmt.Sprintf("op%d", i),
			Method: model.MethodGet,
			Path:   fmt.Sprintf("/things/%d", i),
		})
	}

	s := newTestAnalyzer().StartAnalysis(api)
	require.Equal(t, []string{"op0", "op1", "op2", "op3", "op4"}, s.UserChoices.UIPreferences.PrimaryEndpoints)
}

func TestConfirmPurpose(t *testing.T) {
	t.Run("detected purpose keeps features", func(t *testing.T) {
		a := newTestAnalyzer()
		s := a.StartAnalysis(translationAPI())

		got, err := a.ConfirmPurpose(s.ID, "Language Translation Service")
		require.NoError(t, err)
		require.Equal(t, StatusSelectingFeatures, got.Status)
		require.Equal(t, s.Intelligence.SuggestedFeatures, got.Intelligence.SuggestedFeatures)
		require.Equal(t, s.UserChoices.SelectedFeatures, got.UserChoices.SelectedFeatures)
	})

	t.Run("new purpose re-derives features", func(t *testing.T) {
		a := newTestAnalyzer()
		s := a.StartAnalysis(translationAPI())

		got, err := a.ConfirmPurpose(s.ID, "Image Enhancement and Processing API")
		require.NoError(t, err)
		require.Equal(t, "Image Enhancement and Processing API", got.Intelligence.DetectedPurpose)
		require.Equal(t, "Image Enhancement and Processing API", got.UserChoices.ConfirmedPurpose)

		var ids []string
		for _, f := range got.Intelligence.SuggestedFeatures {
			ids = append(ids, f.ID)
			require.NotNil(t, f.Endpoints)
		}
		require.Equal(t, []string{
			intelligence.FeatureImageSelection,
			intelligence.FeatureBatchProcessing,
			intelligence.FeatureQualitySettings,
		}, ids)
		require.Equal(t, []string{intelligence.FeatureImageSelection}, got.UserChoices.SelectedFeatures)
		require.Len(t, got.RefinedSpec.EnabledFeatures, 1)
	})
}

func TestUpdateFeatureSelectionKeepsRequired(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	got, err := a.UpdateFeatureSelection(s.ID, []string{}, map[string]any{"tone": "formal"})
	require.NoError(t, err)
	require.Equal(t, StatusConfiguring, got.Status)
	require.Equal(t, []string{intelligence.FeatureTextTranslation}, got.UserChoices.SelectedFeatures)
	require.Len(t, got.RefinedSpec.EnabledFeatures, 1)

	got, err = a.UpdateFeatureSelection(s.ID, []string{intelligence.FeatureLanguageDetection, "unknown"}, map[string]any{"glossary": true})
	require.NoError(t, err)
	require.Equal(t, []string{intelligence.FeatureTextTranslation, intelligence.FeatureLanguageDetection}, got.UserChoices.SelectedFeatures)
	require.Equal(t, map[string]any{"tone": "formal", "glossary": true}, got.UserChoices.FeatureCustomizations)

	for _, id := range got.RequiredFeatures() {
		require.Contains(t, got.UserChoices.SelectedFeatures, id)
	}
}

func TestPartialUpdates(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	got, err := a.UpdateUIPreferences(s.ID, UIPreferencesUpdate{Style: ptr(UIStyleMinimal)})
	require.NoError(t, err)
	require.Equal(t, UIStyleMinimal, got.UserChoices.UIPreferences.Style)
	require.Equal(t, s.UserChoices.UIPreferences.PrimaryEndpoints, got.UserChoices.UIPreferences.PrimaryEndpoints)
	require.Equal(t, StatusConfirmingPurpose, got.Status)

	got, err = a.UpdateAdvancedSettings(s.ID, AdvancedSettingsUpdate{DebugMode: ptr(true)})
	require.NoError(t, err)
	require.True(t, got.UserChoices.AdvancedSettings.DebugMode)
	require.Equal(t, ErrorHandlingGraceful, got.UserChoices.AdvancedSettings.ErrorHandling)

	_, err = a.UpdateUIPreferences(s.ID, UIPreferencesUpdate{Style: ptr(UIStyle("fancy"))})
	require.ErrorIs(t, err, ErrInvalidChoice)
	require.ErrorContains(t, err, "invalid ui style")

	_, err = a.UpdateAdvancedSettings(s.ID, AdvancedSettingsUpdate{ErrorHandling: ptr(ErrorHandling("loud"))})
	require.ErrorContains(t, err, "invalid error handling")
}

func TestFinalizeAnalysis(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	_, err := a.ConfirmPurpose(s.ID, "Translate product copy")
	require.NoError(t, err)
	_, err = a.UpdateFeatureSelection(s.ID, []string{intelligence.FeatureTextTranslation}, nil)
	require.NoError(t, err)
	_, err = a.UpdateUIPreferences(s.ID, UIPreferencesUpdate{
		Style:        ptr(UIStyleWorkflowBased),
		CustomNaming: map[string]string{"translateText": "Translate"},
	})
	require.NoError(t, err)

	got, err := a.FinalizeAnalysis(s.ID)
	require.NoError(t, err)
	require.Equal(t, StatusReady, got.Status)
	require.Equal(t, "Translate product copy", got.RefinedSpec.Description)
	require.Equal(t, []string{"translateText", "detectLanguage"}, got.RefinedSpec.FocusedEndpoints)
	require.Len(t, got.RefinedSpec.EnabledFeatures, 1)
	require.Equal(t, UIStyleWorkflowBased, got.RefinedSpec.UIConfiguration.Layout)
	require.Equal(t, map[string]string{"translateText": "Translate"}, got.RefinedSpec.UIConfiguration.CustomNaming)
}

func TestSuggestedFocusAdjustmentsDoesNotMutate(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	features, err := a.SuggestedFocusAdjustments(s.ID, "Image Enhancement and Processing API")
	require.NoError(t, err)
	require.Equal(t, intelligence.FeatureImageSelection, features[0].ID)

	got, err := a.Get(s.ID)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestSessionIsolation(t *testing.T) {
	a := newTestAnalyzer()
	first := a.StartAnalysis(translationAPI())
	second := a.StartAnalysis(translationAPI())

	_, err := a.UpdateFeatureSelection(first.ID, nil, map[string]any{"x": 1})
	require.NoError(t, err)
	_, err = a.FinalizeAnalysis(first.ID)
	require.NoError(t, err)

	got, err := a.Get(second.ID)
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestReturnedSessionsAreCopies(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	s.UserChoices.SelectedFeatures[0] = "changed"
	s.Intelligence.SuggestedFeatures[0].Endpoints[0] = "changed"
	s.UserChoices.FeatureCustomizations["x"] = 1

	got, err := a.Get(s.ID)
	require.NoError(t, err)
	require.Equal(t, intelligence.FeatureTextTranslation, got.UserChoices.SelectedFeatures[0])
	require.Equal(t, "translateText", got.Intelligence.SuggestedFeatures[0].Endpoints[0])
	require.Empty(t, got.UserChoices.FeatureCustomizations)
}

func TestCleanupSession(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())
	require.NoError(t, a.CleanupSession(s.ID))

	calls := map[string]func() error{
		"ConfirmPurpose": func() error { _, err := a.ConfirmPurpose(s.ID, "x"); return err },
		"UpdateFeatureSelection": func() error {
			_, err := a.UpdateFeatureSelection(s.ID, nil, nil)
			return err
		},
		"UpdateUIPreferences": func() error {
			_, err := a.UpdateUIPreferences(s.ID, UIPreferencesUpdate{})
			return err
		},
		"UpdateAdvancedSettings": func() error {
			_, err := a.UpdateAdvancedSettings(s.ID, AdvancedSettingsUpdate{})
			return err
		},
		"FinalizeAnalysis": func() error { _, err := a.FinalizeAnalysis(s.ID); return err },
		"SuggestedFocusAdjustments": func() error {
			_, err := a.SuggestedFocusAdjustments(s.ID, "x")
			return err
		},
		"Get":            func() error { _, err := a.Get(s.ID); return err },
		"CleanupSession": func() error { return a.CleanupSession(s.ID) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.ErrorIs(t, err, ErrSessionNotFound)
			require.ErrorContains(t, err, "session not found")
			require.ErrorContains(t, err, s.ID)
		})
	}
	require.Empty(t, a.ActiveSessions())
}

func TestActiveSessionsConcurrentStart(t *testing.T) {
	a := newTestAnalyzer()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.StartAnalysis(translationAPI())
		}()
	}
	wg.Wait()

	ids := a.ActiveSessions()
	require.Len(t, ids, 10)
	require.Equal(t, "s01", ids[0])
	require.Equal(t, "s10", ids[9])
}

func TestDefaultIDsAreUUIDs(t *testing.T) {
	a := NewAnalyzer(arbor.NewLogger())
	first := a.StartAnalysis(translationAPI())
	second := a.StartAnalysis(translationAPI())

	require.Len(t, first.ID, 36)
	require.NotEqual(t, first.ID, second.ID)
}

func TestTransformOptions(t *testing.T) {
	a := newTestAnalyzer()
	s := a.StartAnalysis(translationAPI())

	s, err := a.UpdateFeatureSelection(s.ID, nil, nil)
	require.NoError(t, err)

	opts := s.TransformOptions()
	require.Same(t, s.Intelligence, opts.Intelligence)
	require.Equal(t, []string{intelligence.FeatureTextTranslation}, opts.SelectedFeatures)

	opts.SelectedFeatures[0] = "changed"
	require.Equal(t, intelligence.FeatureTextTranslation, s.UserChoices.SelectedFeatures[0])
}
