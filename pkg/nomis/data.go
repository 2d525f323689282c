package nomis

import (
	"context"
	"slices"
)

// CodeColumn is appended to every data table and holds the dataset id.
const CodeColumn = "_Code"

// Data builds the data URL for the request, fetches the CSV and returns it
// as a Table with a trailing CodeColumn.
func (c *Client) Data(ctx context.Context, datasetID string, req DataRequest) (*Table, error) {
	u, err := c.Query.DataURL(ctx, datasetID, req)
	if err != nil {
		return nil, err
	}
	records, err := c.transport.CSV(ctx, u)
	if err != nil {
		return nil, err
	}
	t := newTable(records, datasetID)
	c.logger.Debug("fetched data", "dataset", datasetID, "rows", t.Len())
	return t, nil
}

func newTable(records [][]string, datasetID string) *Table {
	t := &Table{Columns: []string{CodeColumn}, Rows: [][]string{}}
	if len(records) == 0 {
		return t
	}
	t.Columns = append(slices.Clone(records[0]), CodeColumn)
	for _, rec := range records[1:] {
		t.Rows = append(t.Rows, append(slices.Clone(rec), datasetID))
	}
	return t
}
