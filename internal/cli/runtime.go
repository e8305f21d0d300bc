package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/kolah/plugforge/internal/config"
	"github.com/kolah/plugforge/internal/engine"
	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/logging"
	"github.com/kolah/plugforge/internal/model"
	"github.com/kolah/plugforge/internal/naming"
	"github.com/kolah/plugforge/internal/session"
)

// runtime holds what every command builds from its configuration.
type runtime struct {
	cfg     *config.Config
	logger  arbor.ILogger
	engines *engine.Loader
}

func setup(cmd *cobra.Command, platformID string) (*runtime, error) {
	cfg, err := config.Load(cmd, platformID)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log.Level)
	naming.SetAdditionalInitialisms(cfg.Initialisms)
	factory := engine.PipelineFactory(logger, engine.PipelineConfig{
		TemplatesDir: cfg.Templates.Dir,
		FetchTimeout: cfg.Fetch.Timeout,
		Strict:       cfg.Strict,
	})

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		engines: engine.NewLoader(logger, factory),
	}, nil
}

func (rt *runtime) analyze(ctx context.Context) (*model.ParsedAPI, error) {
	if err := rt.cfg.RequireSpec(); err != nil {
		return nil, err
	}
	eng := rt.engines.Get(ctx)
	if loader.IsURL(rt.cfg.Spec) {
		return eng.AnalyzeURL(ctx, rt.cfg.Spec)
	}
	return eng.AnalyzeFile(rt.cfg.Spec)
}

// confirm runs the confirmation flow with the configured answers and
// returns the finalized session.
func confirm(analyzer *session.Analyzer, api *model.ParsedAPI, answers config.SessionConfig) (*session.Session, error) {
	s := analyzer.StartAnalysis(api)
	id := s.ID

	purpose := answers.Purpose
	if purpose == "" {
		purpose = s.Intelligence.DetectedPurpose
	}
	if _, err := analyzer.ConfirmPurpose(id, purpose); err != nil {
		return nil, err
	}

	if len(answers.Features) > 0 {
		if _, err := analyzer.UpdateFeatureSelection(id, answers.Features, nil); err != nil {
			return nil, err
		}
	}

	if answers.UIStyle != "" {
		style := session.UIStyle(answers.UIStyle)
		if _, err := analyzer.UpdateUIPreferences(id, session.UIPreferencesUpdate{Style: &style}); err != nil {
			return nil, err
		}
	}

	var adv session.AdvancedSettingsUpdate
	if answers.AuthStrategy != "" {
		strategy := session.AuthStrategy(answers.AuthStrategy)
		adv.AuthenticationStrategy = &strategy
	}
	if answers.ErrorHandling != "" {
		mode := session.ErrorHandling(answers.ErrorHandling)
		adv.ErrorHandling = &mode
	}
	if answers.Debug {
		adv.DebugMode = &answers.Debug
	}
	if _, err := analyzer.UpdateAdvancedSettings(id, adv); err != nil {
		return nil, err
	}

	return analyzer.FinalizeAnalysis(id)
}
