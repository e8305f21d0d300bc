package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolah/plugforge/internal/config"
	"github.com/kolah/plugforge/internal/intelligence"
	"github.com/kolah/plugforge/internal/platform"
	"github.com/kolah/plugforge/internal/session"
)

type analysis struct {
	Session   *session.Session                    `json:"session"`
	WordPress *intelligence.WordPressIntelligence `json:"wordpress,omitempty"`
}

func AnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Parse a document, classify its endpoints and print the confirmed session",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}

	config.BindSessionFlags(cmd)
	cmd.Flags().Bool("wordpress", false, "Include the WordPress integration analysis")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd, "")
	if err != nil {
		return err
	}

	api, err := rt.analyze(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}

	analyzer := session.NewAnalyzer(rt.logger)
	sess, err := confirm(analyzer, api, rt.cfg.Session)
	if err != nil {
		return err
	}
	defer func() { _ = analyzer.CleanupSession(sess.ID) }()

	out := analysis{Session: sess}
	if wp, _ := cmd.Flags().GetBool("wordpress"); wp || rt.cfg.Platform == string(platform.WordPress) {
		out.WordPress = intelligence.AnalyzeForWordPress(api)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
