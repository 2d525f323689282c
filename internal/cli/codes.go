package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	nio "github.com/matzehuels/nomiskit/pkg/io"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// codesCommand creates the codes command.
func (c *CLI) codesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "codes <dataset> <dimension> [key=value...]",
		Short: "List the codes of one dimension",
		Long: `List the codes of one dimension as served by the codelist endpoint.
Extra key=value arguments are passed through as query parameters, for
example "geography=2092957697" to list the children of a geography.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			codes, err := s.client.Codes(ctx, args[0], args[1], params)
			if err != nil {
				return err
			}
			return c.writeCodes(codes, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: csv or json (default: table)")
	return cmd
}

// writeCodes renders codes as a table, or in a machine format when asked.
func (c *CLI) writeCodes(codes *nomis.CodeTable, format string) error {
	if format == "" {
		return renderCodes(c.Out, codes)
	}
	f, err := nio.ParseFormat(format)
	if err != nil {
		return err
	}
	return nio.WriteCodes(codes, c.Out, f)
}

// renderCodes prints a code table with lipgloss borders.
func renderCodes(w io.Writer, codes *nomis.CodeTable) error {
	if codes.Len() == 0 {
		_, err := fmt.Fprintln(w, StyleDim.Render("no codes"))
		return err
	}

	rows := make([][]string, 0, codes.Len())
	for _, r := range codes.Rows {
		rows = append(rows, []string{r.Value, r.Description, r.Codelist})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Value", "Description", "Codelist").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
