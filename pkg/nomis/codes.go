package nomis

import (
	"slices"
	"strings"

	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
)

// CodeRow is one (description, code) pair of a codelist.
type CodeRow struct {
	AgencyID    string `json:"agencyid"`
	Codelist    string `json:"codelist"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

// CodeTable holds the codes of one dimension of one dataset, in service order.
// Tables are immutable once built.
type CodeTable struct {
	Dataset string    `json:"dataset"`
	Rows    []CodeRow `json:"rows"`
}

func newCodeTable(s *nomisweb.Structure) *CodeTable {
	t := &CodeTable{Dataset: s.Header.ID}
	if s.CodeLists == nil {
		return t
	}
	for _, cl := range s.CodeLists.CodeList {
		for _, c := range cl.Code {
			t.Rows = append(t.Rows, CodeRow{
				AgencyID:    cl.AgencyID,
				Codelist:    cl.ID,
				Name:        cl.Name.Value,
				Description: c.Description.Value,
				Value:       string(c.Value),
			})
		}
	}
	return t
}

func (t *CodeTable) clone() *CodeTable {
	if t == nil {
		return nil
	}
	return &CodeTable{Dataset: t.Dataset, Rows: slices.Clone(t.Rows)}
}

// Len returns the number of codes.
func (t *CodeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Values returns the codes in table order.
func (t *CodeTable) Values() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Value)
	}
	return out
}

// Lookup returns the code whose description equals desc exactly.
// If several rows match, the last one wins.
func (t *CodeTable) Lookup(desc string) (string, bool) {
	var code string
	var found bool
	for _, r := range t.Rows {
		if r.Description == desc {
			code, found = r.Value, true
		}
	}
	return code, found
}

// Filter returns the rows whose description contains substr (case-sensitive).
func (t *CodeTable) Filter(substr string) *CodeTable {
	out := &CodeTable{Dataset: t.Dataset}
	for _, r := range t.Rows {
		if strings.Contains(r.Description, substr) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
