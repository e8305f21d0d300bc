package session

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
)

const (
	maxPrimaryEndpoints = 5
	maxPrimaryActions   = 3
)

// Analyzer owns the open sessions. Sessions are never expired: callers
// release them with CleanupSession.
//
// Every method returns a copy, so callers can never change stored state
// behind the Analyzer's back. Operations on one session are expected to be
// serialized by the caller.
type Analyzer struct {
	logger arbor.ILogger
	newID  func() string

	mu       sync.Mutex
	sessions map[string]*Session
}

type Option func(*Analyzer)

// WithIDGenerator replaces the UUID session ids, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(a *Analyzer) {
		a.newID = fn
	}
}

func NewAnalyzer(logger arbor.ILogger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:   logger,
		newID:    uuid.NewString,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StartAnalysis classifies api and opens a session waiting for the purpose
// to be confirmed. An API without endpoints is valid input.
func (a *Analyzer) StartAnalysis(api *model.ParsedAPI) *Session {
	intel := intelligence.Analyze(api)

	s := &Session{
		ID:           a.newID(),
		OriginalAPI:  api,
		Intelligence: intel,
		UserChoices:  defaultChoices(intel),
		Status:       StatusConfirmingPurpose,
	}
	s.RefinedSpec = initialSpec(api, intel)

	a.mu.Lock()
	a.sessions[s.ID] = s
	a.mu.Unlock()

	a.logger.Info().
		Str("session", s.ID).
		Str("api", api.Name).
		Str("purpose", intel.DetectedPurpose).
		Int("features", len(intel.SuggestedFeatures)).
		Msg("Analysis session started")
	return s.clone()
}

// ConfirmPurpose records the purpose. A purpose other than the detected one
// re-derives the suggested features from it: selections of features that
// no longer exist are dropped and new required features are selected.
func (a *Analyzer) ConfirmPurpose(id, purpose string) (*Session, error) {
	return a.update(id, func(s *Session) error {
		s.UserChoices.ConfirmedPurpose = purpose
		s.Status = StatusSelectingFeatures

		if purpose == s.Intelligence.DetectedPurpose {
			return nil
		}

		intel := intelligence.Analyze(s.OriginalAPI)
		intel.DetectedPurpose = purpose
		intel.SuggestedFeatures = intelligence.SynthesizeForPurpose(s.OriginalAPI, purpose)
		s.Intelligence = intel

		var selected []string
		for _, f := range intel.SuggestedFeatures {
			if f.Required || slices.Contains(s.UserChoices.SelectedFeatures, f.ID) {
				selected = append(selected, f.ID)
			}
		}
		s.UserChoices.SelectedFeatures = nonNil(selected)
		s.RefinedSpec.EnabledFeatures = enabledFeatures(s)

		a.logger.Debug().
			Str("session", s.ID).
			Str("purpose", purpose).
			Int("features", len(intel.SuggestedFeatures)).
			Msg("Features re-derived for confirmed purpose")
		return nil
	})
}

// UpdateFeatureSelection replaces the selection and merges customizations
// into the existing ones. Required features stay selected whatever the
// caller passes, and ids that are not suggested features are ignored.
func (a *Analyzer) UpdateFeatureSelection(id string, selected []string, customizations map[string]any) (*Session, error) {
	return a.update(id, func(s *Session) error {
		var ids []string
		for _, f := range s.Intelligence.SuggestedFeatures {
			if f.Required || slices.Contains(selected, f.ID) {
				ids = append(ids, f.ID)
			}
		}
		s.UserChoices.SelectedFeatures = nonNil(ids)

		if s.UserChoices.FeatureCustomizations == nil {
			s.UserChoices.FeatureCustomizations = map[string]any{}
		}
		maps.Copy(s.UserChoices.FeatureCustomizations, customizations)

		s.RefinedSpec.EnabledFeatures = enabledFeatures(s)
		s.Status = StatusConfiguring
		return nil
	})
}

func (a *Analyzer) UpdateUIPreferences(id string, update UIPreferencesUpdate) (*Session, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}
	return a.update(id, func(s *Session) error {
		prefs := &s.UserChoices.UIPreferences
		if update.Style != nil {
			prefs.Style = *update.Style
		}
		if update.PrimaryEndpoints != nil {
			prefs.PrimaryEndpoints = slices.Clone(update.PrimaryEndpoints)
		}
		if update.CustomNaming != nil {
			prefs.CustomNaming = maps.Clone(update.CustomNaming)
		}
		return nil
	})
}

func (a *Analyzer) UpdateAdvancedSettings(id string, update AdvancedSettingsUpdate) (*Session, error) {
	if err := update.validate(); err != nil {
		return nil, err
	}
	return a.update(id, func(s *Session) error {
		settings := &s.UserChoices.AdvancedSettings
		if update.AuthenticationStrategy != nil {
			settings.AuthenticationStrategy = *update.AuthenticationStrategy
		}
		if update.ErrorHandling != nil {
			settings.ErrorHandling = *update.ErrorHandling
		}
		if update.PerformanceOptimization != nil {
			settings.PerformanceOptimization = *update.PerformanceOptimization
		}
		if update.DebugMode != nil {
			settings.DebugMode = *update.DebugMode
		}
		return nil
	})
}

// FinalizeAnalysis recomputes the refined spec from the choices and marks
// the session ready for transformation.
func (a *Analyzer) FinalizeAnalysis(id string) (*Session, error) {
	return a.update(id, func(s *Session) error {
		enabled := enabledFeatures(s)
		s.RefinedSpec = RefinedSpec{
			Name:             s.OriginalAPI.Name,
			Description:      s.UserChoices.ConfirmedPurpose,
			FocusedEndpoints: focusedEndpoints(enabled),
			EnabledFeatures:  enabled,
			UIConfiguration:  uiConfiguration(s.Intelligence, &s.UserChoices),
		}
		s.Status = StatusReady

		a.logger.Info().
			Str("session", s.ID).
			Int("features", len(enabled)).
			Int("endpoints", len(s.RefinedSpec.FocusedEndpoints)).
			Msg("Analysis finalized")
		return nil
	})
}

// SuggestedFocusAdjustments previews the features a different purpose
// would produce without changing the session.
func (a *Analyzer) SuggestedFocusAdjustments(id, purpose string) ([]intelligence.PluginFeature, error) {
	s, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	return intelligence.SynthesizeForPurpose(s.OriginalAPI, purpose), nil
}

func (a *Analyzer) Get(id string) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	return s.clone(), nil
}

// CleanupSession removes the session. Later calls with the same id fail
// with ErrSessionNotFound.
func (a *Analyzer) CleanupSession(id string) error {
	a.mu.Lock()
	_, ok := a.sessions[id]
	delete(a.sessions, id)
	a.mu.Unlock()

	if !ok {
		return notFound(id)
	}
	a.logger.Debug().Str("session", id).Msg("Analysis session removed")
	return nil
}

// ActiveSessions returns the ids of all open sessions, sorted.
func (a *Analyzer) ActiveSessions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]string, 0, len(a.sessions))
	for id := range a.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// update applies fn to a working copy and stores it only when fn succeeds.
func (a *Analyzer) update(id string, fn func(*Session) error) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	s := stored.clone()
	if err := fn(s); err != nil {
		return nil, err
	}
	a.sessions[id] = s
	return s.clone(), nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

func defaultChoices(intel *intelligence.Intelligence) UserChoices {
	selected := []string{}
	primary := []string{}
	for _, f := range intel.SuggestedFeatures {
		if f.Enabled {
			selected = append(selected, f.ID)
		}
		if f.Required {
			primary = append(primary, f.Endpoints...)
		}
	}

	return UserChoices{
		ConfirmedPurpose:      intel.DetectedPurpose,
		SelectedFeatures:      selected,
		FeatureCustomizations: map[string]any{},
		UIPreferences: UIPreferences{
			Style:            UIStyleFullFeatured,
			PrimaryEndpoints: primary[:min(len(primary), maxPrimaryEndpoints)],
			CustomNaming:     map[string]string{},
		},
		AdvancedSettings: AdvancedSettings{
			AuthenticationStrategy:  AuthPluginManaged,
			ErrorHandling:           ErrorHandlingGraceful,
			PerformanceOptimization: true,
			DebugMode:               false,
		},
	}
}

func initialSpec(api *model.ParsedAPI, intel *intelligence.Intelligence) RefinedSpec {
	enabled := []intelligence.PluginFeature{}
	for _, f := range intel.SuggestedFeatures {
		if f.Enabled {
			enabled = append(enabled, f)
		}
	}
	return RefinedSpec{
		Name:             api.Name,
		Description:      intel.DetectedPurpose,
		FocusedEndpoints: focusedEndpoints(enabled),
		EnabledFeatures:  intelligence.CloneFeatures(enabled),
		UIConfiguration:  uiConfiguration(intel, nil),
	}
}

// enabledFeatures filters the suggested features down to the selection,
// keeping suggestion order.
func enabledFeatures(s *Session) []intelligence.PluginFeature {
	result := []intelligence.PluginFeature{}
	for _, f := range s.Intelligence.SuggestedFeatures {
		if slices.Contains(s.UserChoices.SelectedFeatures, f.ID) {
			result = append(result, f)
		}
	}
	return intelligence.CloneFeatures(result)
}

// focusedEndpoints is the union of the features' endpoints in first-seen
// order.
func focusedEndpoints(features []intelligence.PluginFeature) []string {
	ids := []string{}
	for _, f := range features {
		for _, id := range f.Endpoints {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func uiConfiguration(intel *intelligence.Intelligence, choices *UserChoices) UIConfiguration {
	cfg := UIConfiguration{
		Layout:         UIStyleFullFeatured,
		PrimaryActions: []PrimaryAction{},
		Categories:     make([]CategorySummary, 0, len(intel.EndpointCategories)),
	}
	for _, f := range intel.SuggestedFeatures {
		if len(cfg.PrimaryActions) == maxPrimaryActions {
			break
		}
		if f.Required || f.Enabled {
			cfg.PrimaryActions = append(cfg.PrimaryActions, PrimaryAction{ID: f.ID, Name: f.Name, Description: f.Description})
		}
	}
	for _, c := range intel.EndpointCategories {
		cfg.Categories = append(cfg.Categories, CategorySummary{Name: c.Name, Description: c.Description, Endpoints: len(c.Endpoints)})
	}
	if choices != nil {
		cfg.Layout = choices.UIPreferences.Style
		if len(choices.UIPreferences.CustomNaming) > 0 {
			cfg.CustomNaming = maps.Clone(choices.UIPreferences.CustomNaming)
		}
	}
	return cfg
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
