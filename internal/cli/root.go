package cli

import (
	"github.com/spf13/cobra"

	"github.com/kolah/plugforge/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "plugforge",
		Short:         "Turn an OpenAPI document into Figma, WordPress and Shopify plugin scaffolds",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)
	root.AddCommand(
		AnalyzeCommand(),
		GenerateCommand(),
		PlatformsCommand(),
		ServeCommand(),
	)

	return root
}
