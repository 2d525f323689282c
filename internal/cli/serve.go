package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nomiskit/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the client over a read-only JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := api.Config{
				Addr:           s.cfg.Server.Addr,
				AllowedOrigins: s.cfg.Server.AllowedOrigins,
			}
			if addr != "" {
				cfg.Addr = addr
			}

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			return api.New(s.client, cfg, loggerFromContext(ctx)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
