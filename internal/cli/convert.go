package cli

import (
	"github.com/spf13/cobra"

	nio "github.com/matzehuels/nomiskit/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-export a saved data table as CSV or JSON",
		Long: `Read a table written by "nomis data -o" and write it again in another
format. The input format follows the file extension; output defaults to CSV
on stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := nio.ImportTable(args[0])
			if err != nil {
				return err
			}

			f := nio.FormatCSV
			switch {
			case format != "":
				if f, err = nio.ParseFormat(format); err != nil {
					return err
				}
			case output != "":
				f = nio.FormatFromPath(output)
			}

			if output == "" {
				return nio.WriteTable(table, c.Out, f)
			}
			if err := writeTableFile(table, output, f); err != nil {
				return err
			}
			printSuccess("Converted %d rows", table.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or json (default: from -o extension, else csv)")
	return cmd
}
