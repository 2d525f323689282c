package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// ReadTable decodes a table written by [WriteTable] in the given format.
//
// CSV input takes its first record as the header. JSON input must have
// "columns" and "rows"; every row must be as wide as the header.
// ReadTable does not close r.
func ReadTable(r io.Reader, f Format) (*nomis.Table, error) {
	if f == FormatJSON {
		var t nomis.Table
		if err := json.NewDecoder(r).Decode(&t); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		for i, row := range t.Rows {
			if len(row) != len(t.Columns) {
				return nil, fmt.Errorf("row %d: %d fields, want %d", i, len(row), len(t.Columns))
			}
		}
		return &t, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	records, err := nomisweb.ParseCSV(string(data))
	if err != nil {
		return nil, err
	}
	t := &nomis.Table{Rows: [][]string{}}
	if len(records) > 0 {
		t.Columns, t.Rows = records[0], records[1:]
	}
	return t, nil
}

// ImportTable reads a table file, choosing the format from the extension.
func ImportTable(path string) (*nomis.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTable(f, FormatFromPath(path))
}
