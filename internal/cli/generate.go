package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/plugforge/internal/bundle"
	"github.com/kolah/plugforge/internal/config"
	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/platform"
	"github.com/kolah/plugforge/internal/session"
)

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "generate [figma|wordpress|shopify]",
		Short:     "Generate a plugin bundle for a platform",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: platformIDs(),
		RunE:      runGenerate,
	}

	config.BindSessionFlags(cmd)

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var platformID string
	if len(args) > 0 {
		platformID = args[0]
	}

	rt, err := setup(cmd, platformID)
	if err != nil {
		return err
	}
	if err := rt.cfg.RequirePlatform(); err != nil {
		return err
	}

	api, err := rt.analyze(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}

	cmd.PrintErrf("Loaded %s v%s\n", api.Name, api.Version)
	cmd.PrintErrf("  Endpoints: %d\n", len(api.Endpoints))

	var opts platform.Options
	if rt.cfg.Session.Answered() {
		analyzer := session.NewAnalyzer(rt.logger)
		sess, err := confirm(analyzer, api, rt.cfg.Session)
		if err != nil {
			return err
		}
		opts = sess.TransformOptions()
		_ = analyzer.CleanupSession(sess.ID)
	}
	if rt.cfg.Platform == string(platform.WordPress) && len(rt.cfg.Session.WordPressFeatures) > 0 {
		opts.WordPress = intelligence.AnalyzeForWordPress(api)
		opts.SelectedFeatures = rt.cfg.Session.WordPressFeatures
	}

	result, err := rt.engines.Get(cmd.Context()).Transform(api, rt.cfg.Platform, opts)
	if err != nil {
		return fmt.Errorf("transforming for %s: %w", rt.cfg.Platform, err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		return bundle.Print(cmd.OutOrStdout(), result)
	}

	written, err := bundle.Write(rt.cfg.OutputDir, result)
	if err != nil {
		return err
	}
	for _, path := range written {
		cmd.PrintErrf("Written: %s\n", path)
	}
	return nil
}

func platformIDs() []string {
	var ids []string
	for _, k := range platform.Kinds() {
		ids = append(ids, string(k))
	}
	return ids
}
