package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kolah/plugforge/internal/server"
	"github.com/kolah/plugforge/internal/session"
)

func ServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis session API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd, "")
			if err != nil {
				return err
			}

			srv, err := server.New(rt.logger, rt.engines, session.NewAnalyzer(rt.logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, rt.cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")

	return cmd
}
