package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func PlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the platforms plugins can be generated for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, "")
			if err != nil {
				return err
			}
			for _, id := range rt.engines.Get(cmd.Context()).SupportedPlatforms() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
