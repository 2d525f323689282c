package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	nio "github.com/matzehuels/nomiskit/pkg/io"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// queryFlags are shared by the url and data commands.
type queryFlags struct {
	postcode string
	areaType string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.postcode, "postcode", "", "restrict the query to the area containing this postcode")
	cmd.Flags().StringVar(&q.areaType, "area-type", "", "area type used with --postcode (default "+nomis.DefaultAreaType+")")
}

func (q *queryFlags) request(args []string) (nomis.DataRequest, error) {
	params, err := parseParams(args)
	if err != nil {
		return nomis.DataRequest{}, err
	}
	return nomis.DataRequest{Postcode: q.postcode, AreaType: q.areaType, Params: params}, nil
}

// urlCommand creates the url command.
func (c *CLI) urlCommand() *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "url <dataset> [key=value...]",
		Short: "Build the data query URL without fetching it",
		Long: `Build a data query URL. Dimension values may be given as descriptions,
for example "sex=Female" or "geography=Leeds", and are mapped to codes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := q.request(args[1:])
			if err != nil {
				return err
			}

			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := s.client.Query.DataURL(ctx, args[0], req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.Out, u)
			return err
		},
	}

	q.register(cmd)
	return cmd
}

// dataCommand creates the data command.
func (c *CLI) dataCommand() *cobra.Command {
	var (
		q      queryFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "data <dataset> [key=value...]",
		Short: "Fetch observations for a dataset",
		Long: `Fetch observations. Arguments are handled as by "nomis url"; the result
is written as CSV to stdout or to the file given with -o.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req, err := q.request(args[1:])
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

			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if output == "" {
				table, err := s.client.Data(ctx, args[0], req)
				if err != nil {
					return err
				}
				return nio.WriteTable(table, c.Out, f)
			}

			var table *nomis.Table
			err = withSpinner(ctx, os.Stderr, fmt.Sprintf("Fetching %s...", args[0]), func() (err error) {
				table, err = s.client.Data(ctx, args[0], req)
				return err
			})
			if err != nil {
				return err
			}
			if err := writeTableFile(table, output, f); err != nil {
				return err
			}
			printSuccess("Fetched %d rows", table.Len())
			printFile(output)
			return nil
		},
	}

	q.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or json (default: from -o extension, else csv)")
	return cmd
}

func writeTableFile(t *nomis.Table, path string, f nio.Format) error {
	if nio.FormatFromPath(path) == f {
		return nio.ExportTable(t, path)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nio.WriteTable(t, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
