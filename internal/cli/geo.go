package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// geoCommand creates the geo command.
func (c *CLI) geoCommand() *cobra.Command {
	var (
		req      nomis.GeoRequest
		postcode string
		areaType string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Browse geographies and resolve names to codes",
		Long: `Browse the geography hierarchy of a dataset (NM_1_1 by default).

Without flags the top-level geographies are listed. --value lists the
children of a code, --desc drills one level further into the child with that
exact description and --search filters the result by substring. --helper
selects a named shortcut (` + helperNames() + `) and --chase expands the
value into its children before listing.

--postcode prints the geography token for a postcode instead, ready to use as
a geography parameter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if postcode != "" {
				_, err := fmt.Fprintln(c.Out, nomis.PostcodeGeography(postcode, areaType))
				return err
			}

			ctx := cmd.Context()
			s, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			geog, err := s.client.Geography.Resolve(ctx, req)
			if err != nil {
				return err
			}
			return c.writeCodes(geog, format)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Dataset, "dataset", "", "dataset whose geographies are browsed (default "+nomis.GeographyDataset+")")
	flags.StringVar(&req.Value, "value", "", "list the geographies under this code")
	flags.StringVar(&req.Description, "desc", "", "drill into the child with this exact description")
	flags.StringVar(&req.Search, "search", "", "keep only geographies whose description contains this text")
	flags.StringVar(&req.Helper, "helper", "", "named geography shortcut")
	flags.BoolVar(&req.Chase, "chase", false, "expand the value into its children first")
	flags.StringVar(&postcode, "postcode", "", "print the geography token for a postcode")
	flags.StringVar(&areaType, "area-type", nomis.DefaultAreaType, "area type used with --postcode")
	flags.StringVar(&format, "format", "", "output format: csv or json (default: table)")
	return cmd
}

func helperNames() string {
	names := make([]string, 0, len(nomis.Helpers))
	for name := range nomis.Helpers {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
