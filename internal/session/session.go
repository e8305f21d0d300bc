// Package session implements the interactive confirmation flow between
// analysing an API and transforming it: the user confirms the detected
// purpose, picks features and tunes UI and advanced settings.
package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/platform"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidChoice   = errors.New("invalid")
)

// Status is the position of a session in the confirmation flow. Sessions
// only move forward.
type Status string

const (
	StatusAnalyzing         Status = "analyzing"
	StatusConfirmingPurpose Status = "confirming-purpose"
	StatusSelectingFeatures Status = "selecting-features"
	StatusConfiguring       Status = "configuring"
	StatusReady             Status = "ready"
)

type UIStyle string

const (
	UIStyleMinimal       UIStyle = "minimal"
	UIStyleFullFeatured  UIStyle = "full-featured"
	UIStyleWorkflowBased UIStyle = "workflow-based"
)

type AuthStrategy string

const (
	AuthPluginManaged AuthStrategy = "plugin-managed"
	AuthUserInput     AuthStrategy = "user-input"
	AuthEnvVariable   AuthStrategy = "env-variable"
)

type ErrorHandling string

const (
	ErrorHandlingStrict   ErrorHandling = "strict"
	ErrorHandlingGraceful ErrorHandling = "graceful"
	ErrorHandlingSilent   ErrorHandling = "silent"
)

func UIStyles() []UIStyle {
	return []UIStyle{UIStyleMinimal, UIStyleFullFeatured, UIStyleWorkflowBased}
}

func AuthStrategies() []AuthStrategy {
	return []AuthStrategy{AuthPluginManaged, AuthUserInput, AuthEnvVariable}
}

func ErrorHandlingModes() []ErrorHandling {
	return []ErrorHandling{ErrorHandlingStrict, ErrorHandlingGraceful, ErrorHandlingSilent}
}

type UIPreferences struct {
	Style            UIStyle           `json:"style"`
	PrimaryEndpoints []string          `json:"primaryEndpoints"`
	CustomNaming     map[string]string `json:"customNaming"`
}

type AdvancedSettings struct {
	AuthenticationStrategy  AuthStrategy  `json:"authenticationStrategy"`
	ErrorHandling           ErrorHandling `json:"errorHandling"`
	PerformanceOptimization bool          `json:"performanceOptimization"`
	DebugMode               bool          `json:"debugMode"`
}

type UserChoices struct {
	ConfirmedPurpose      string           `json:"confirmedPurpose"`
	SelectedFeatures      []string         `json:"selectedFeatures"`
	FeatureCustomizations map[string]any   `json:"featureCustomizations"`
	UIPreferences         UIPreferences    `json:"uiPreferences"`
	AdvancedSettings      AdvancedSettings `json:"advancedSettings"`
}

type PrimaryAction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategorySummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Endpoints   int    `json:"endpoints"`
}

type UIConfiguration struct {
	Layout         UIStyle           `json:"layout"`
	PrimaryActions []PrimaryAction   `json:"primaryActions"`
	Categories     []CategorySummary `json:"categories"`
	CustomNaming   map[string]string `json:"customNaming,omitempty"`
}

// RefinedSpec is the view of the API the user has narrowed down to. It is
// derived from the choices and never edited directly.
type RefinedSpec struct {
	Name             string                       `json:"name"`
	Description      string                       `json:"description"`
	FocusedEndpoints []string                     `json:"focusedEndpoints"`
	EnabledFeatures  []intelligence.PluginFeature `json:"enabledFeatures"`
	UIConfiguration  UIConfiguration              `json:"uiConfiguration"`
}

type Session struct {
	ID           string                     `json:"id"`
	OriginalAPI  *model.ParsedAPI           `json:"originalAPI"`
	Intelligence *intelligence.Intelligence `json:"intelligence"`
	UserChoices  UserChoices                `json:"userChoices"`
	RefinedSpec  RefinedSpec                `json:"refinedSpec"`
	Status       Status                     `json:"status"`
}

// UIPreferencesUpdate is a partial update. Nil fields are left unchanged.
type UIPreferencesUpdate struct {
	Style            *UIStyle          `json:"style,omitempty"`
	PrimaryEndpoints []string          `json:"primaryEndpoints,omitempty"`
	CustomNaming     map[string]string `json:"customNaming,omitempty"`
}

// AdvancedSettingsUpdate is a partial update. Nil fields are left unchanged.
type AdvancedSettingsUpdate struct {
	AuthenticationStrategy  *AuthStrategy  `json:"authenticationStrategy,omitempty"`
	ErrorHandling           *ErrorHandling `json:"errorHandling,omitempty"`
	PerformanceOptimization *bool          `json:"performanceOptimization,omitempty"`
	DebugMode               *bool          `json:"debugMode,omitempty"`
}

func (u UIPreferencesUpdate) validate() error {
	if u.Style != nil && !slices.Contains(UIStyles(), *u.Style) {
		return fmt.Errorf("%w ui style %q", ErrInvalidChoice, *u.Style)
	}
	return nil
}

func (u AdvancedSettingsUpdate) validate() error {
	if u.AuthenticationStrategy != nil && !slices.Contains(AuthStrategies(), *u.AuthenticationStrategy) {
		return fmt.Errorf("%w authentication strategy %q", ErrInvalidChoice, *u.AuthenticationStrategy)
	}
	if u.ErrorHandling != nil && !slices.Contains(ErrorHandlingModes(), *u.ErrorHandling) {
		return fmt.Errorf("%w error handling %q", ErrInvalidChoice, *u.ErrorHandling)
	}
	return nil
}

// clone returns a copy sharing only the parsed API, which is read-only.
func (s *Session) clone() *Session {
	out := *s
	out.Intelligence = s.Intelligence.Clone()

	out.UserChoices.SelectedFeatures = slices.Clone(s.UserChoices.SelectedFeatures)
	out.UserChoices.FeatureCustomizations = maps.Clone(s.UserChoices.FeatureCustomizations)
	out.UserChoices.UIPreferences.PrimaryEndpoints = slices.Clone(s.UserChoices.UIPreferences.PrimaryEndpoints)
	out.UserChoices.UIPreferences.CustomNaming = maps.Clone(s.UserChoices.UIPreferences.CustomNaming)

	out.RefinedSpec.FocusedEndpoints = slices.Clone(s.RefinedSpec.FocusedEndpoints)
	out.RefinedSpec.EnabledFeatures = intelligence.CloneFeatures(s.RefinedSpec.EnabledFeatures)
	out.RefinedSpec.UIConfiguration.PrimaryActions = slices.Clone(s.RefinedSpec.UIConfiguration.PrimaryActions)
	out.RefinedSpec.UIConfiguration.Categories = slices.Clone(s.RefinedSpec.UIConfiguration.Categories)
	out.RefinedSpec.UIConfiguration.CustomNaming = maps.Clone(s.RefinedSpec.UIConfiguration.CustomNaming)
	return &out
}

// RequiredFeatures returns the ids of the features that cannot be
// deselected.
func (s *Session) RequiredFeatures() []string {
	var ids []string
	for _, f := range s.Intelligence.SuggestedFeatures {
		if f.Required {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// TransformOptions carries the confirmed choices into a platform
// transformation.
func (s *Session) TransformOptions() platform.Options {
	return platform.Options{
		SelectedFeatures: slices.Clone(s.UserChoices.SelectedFeatures),
		Intelligence:     s.Intelligence,
	}
}
