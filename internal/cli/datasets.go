package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// datasetsCommand creates the datasets command.
func (c *CLI) datasetsCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "datasets [search]",
		Short: "List datasets, optionally filtered by a search term",
		Long: `List Nomis datasets. The search term is passed to the service, so
wildcards such as "*jobseeker*" are supported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			search := ""
			if len(args) == 1 {
				search = args[0]
			}

			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			prog := newProgress(loggerFromContext(ctx))
			datasets, err := s.client.Catalog.Datasets(ctx, search)
			if err != nil {
				return err
			}
			prog.done("found datasets", "count", len(datasets), "search", search)

			if !interactive {
				return nomis.DescribeDatasets(c.Out, datasets)
			}
			if len(datasets) == 0 {
				printWarning("No datasets match %q", search)
				return nil
			}

			final, err := tea.NewProgram(NewDatasetListModel(datasets), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			m, ok := final.(DatasetListModel)
			if !ok || m.Selected == nil {
				return nil
			}
			md, err := s.client.Metadata.Metadata(ctx, m.Selected.ID)
			if err != nil {
				return err
			}
			return nomis.DescribeMetadata(c.Out, md, md.Keys(), true)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick a dataset interactively and show its dimensions")
	return cmd
}
