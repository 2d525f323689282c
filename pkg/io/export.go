package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q (want csv or json)", s)
}

// FormatFromPath picks a format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// WriteTable encodes a data table in the given format.
func WriteTable(t *nomis.Table, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(t, w)
	case FormatCSV, "":
		return writeCSV(t.Columns, t.Rows, w)
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// WriteCodes encodes a codelist in the given format. CSV output has the
// columns agencyid, dataset, codelist, name, description, value.
func WriteCodes(t *nomis.CodeTable, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(t, w)
	case FormatCSV, "":
		rows := make([][]string, 0, t.Len())
		for _, r := range t.Rows {
			rows = append(rows, []string{r.AgencyID, t.Dataset, r.Codelist, r.Name, r.Description, r.Value})
		}
		return writeCSV([]string{"agencyid", "dataset", "codelist", "name", "description", "value"}, rows, w)
	}
	return errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// ExportTable writes a data table to a file, choosing the format from the
// extension.
func ExportTable(t *nomis.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTable(t, f, FormatFromPath(path))
}

func writeCSV(header []string, rows [][]string, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
