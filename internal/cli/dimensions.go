package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// dimensionsCommand creates the dimensions command.
func (c *CLI) dimensionsCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "dimensions <dataset> [dimension...]",
		Aliases: []string{"dims"},
		Short:   "Describe the dimensions of a dataset and their codes",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			id := args[0]
			if len(args) == 1 {
				md, err := s.client.Metadata.Metadata(ctx, id)
				if err != nil {
					return err
				}
				if err := nomis.HelpURL(c.Out, md); err != nil {
					return err
				}
			}
			return s.client.Metadata.Describe(ctx, c.Out, id, !raw, args[1:]...)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print codelist names and values instead of the summary form")
	return cmd
}
