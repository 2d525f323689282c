package nomis

import (
	"fmt"
	"io"
	"strings"
)

// DescribeDatasets writes "<id> - <name>: <description>" for each dataset,
// separated by blank lines.
func DescribeDatasets(w io.Writer, datasets []Dataset) error {
	for _, d := range datasets {
		if _, err := fmt.Fprintf(w, "%s - %s: %s\n\n", d.ID, d.Name, d.Description); err != nil {
			return err
		}
	}
	return nil
}

// DescribeMetadata writes the codes of the given dimensions.
//
// The pretty form prints one line per dimension listing
// "description (code)" pairs. The raw form prints a header per dimension and
// one "codelist - description: code" line per code.
func DescribeMetadata(w io.Writer, md *Metadata, keys []string, pretty bool) error {
	if !pretty {
		for _, k := range keys {
			if _, err := fmt.Fprintf(w, "---- %s ----\n", k); err != nil {
				return err
			}
			for _, r := range md.Dimensions[k].Rows {
				if _, err := fmt.Fprintf(w, "%s - %s: %s\n", r.Codelist, r.Description, r.Value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "The following dimensions are available for %s (%s):\n\n", md.Dataset.ID, md.Dataset.Name); err != nil {
		return err
	}
	for _, k := range keys {
		var items []string
		for _, r := range md.Dimensions[k].Rows {
			items = append(items, fmt.Sprintf("%s (%s)", r.Description, r.Value))
		}
		if _, err := fmt.Fprintf(w, " - %s: %s\n", k, strings.Join(items, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// HelpURL writes the one-line summary of the dimensions a dataset supports.
func HelpURL(w io.Writer, md *Metadata) error {
	_, err := fmt.Fprintf(w, "Dataset %s (%s) supports the following dimensions: %s.\n",
		md.Dataset.ID, md.Dataset.Name, strings.Join(md.Keys(), ", "))
	return err
}
