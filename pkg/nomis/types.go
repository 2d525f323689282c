package nomis

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
)

// Transport fetches and decodes documents from the data service.
// [nomisweb.Client] is the production implementation.
type Transport interface {
	Structure(ctx context.Context, url string) (*nomisweb.Structure, error)
	CSV(ctx context.Context, url string) ([][]string, error)
}

// Dataset is one entry of the service's dataset listing.
type Dataset struct {
	Agency      string      `json:"agency"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Dimensions  []Dimension `json:"dimensions,omitempty"`
}

// Dimension references the codelist backing one axis of a dataset.
// Concept is the service's upper-case name (e.g. "SEX").
type Dimension struct {
	Codelist string `json:"codelist"`
	Concept  string `json:"concept"`
}

// Key returns the lower-case name used for query parameters and metadata keys.
func (d Dimension) Key() string { return strings.ToLower(d.Concept) }

// Metadata is the cached description of one dataset: its listing entry plus
// one CodeTable per dimension, keyed by lower-case concept name.
type Metadata struct {
	Dataset    Dataset               `json:"dataset"`
	Dimensions map[string]*CodeTable `json:"dimensions"`
}

// Keys returns the dimension names in the order the dataset declares them.
func (m *Metadata) Keys() []string {
	keys := make([]string, 0, len(m.Dataset.Dimensions))
	seen := make(map[string]bool, len(m.Dataset.Dimensions))
	for _, d := range m.Dataset.Dimensions {
		k := d.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func (d Dataset) clone() Dataset {
	d.Dimensions = slices.Clone(d.Dimensions)
	return d
}

// clone copies md deeply enough that the copy can be modified freely.
func (m *Metadata) clone() *Metadata {
	out := &Metadata{
		Dataset:    m.Dataset.clone(),
		Dimensions: make(map[string]*CodeTable, len(m.Dimensions)),
	}
	for k, t := range m.Dimensions {
		out.Dimensions[k] = t.clone()
	}
	return out
}

// Table is a CSV result set.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
