package nomis

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nomiskit/pkg/integrations"
	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
)

// fakeTransport serves canned documents by URL and records every request.
type fakeTransport struct {
	structures map[string]*nomisweb.Structure
	csv        map[string][][]string
	fail       map[string]error
	calls      []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		structures: make(map[string]*nomisweb.Structure),
		csv:        make(map[string][][]string),
		fail:       make(map[string]error),
	}
}

func (f *fakeTransport) Structure(_ context.Context, url string) (*nomisweb.Structure, error) {
	f.calls = append(f.calls, url)
	if err := f.fail[url]; err != nil {
		return nil, err
	}
	s, ok := f.structures[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integrations.ErrNotFound, url)
	}
	return s, nil
}

func (f *fakeTransport) CSV(_ context.Context, url string) ([][]string, error) {
	f.calls = append(f.calls, url)
	if err := f.fail[url]; err != nil {
		return nil, err
	}
	rec, ok := f.csv[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", integrations.ErrNotFound, url)
	}
	return rec, nil
}

func (f *fakeTransport) called(url string) bool {
	for _, c := range f.calls {
		if c == url {
			return true
		}
	}
	return false
}

func listingDoc(datasets ...nomisweb.KeyFamily) *nomisweb.Structure {
	return &nomisweb.Structure{
		Header:      nomisweb.Header{ID: "none"},
		KeyFamilies: &nomisweb.KeyFamilies{KeyFamily: datasets},
	}
}

func keyFamily(id, name string, concepts ...string) nomisweb.KeyFamily {
	kf := nomisweb.KeyFamily{
		AgencyID:    "NOMIS",
		ID:          id,
		Name:        nomisweb.Text{Value: name},
		Description: &nomisweb.Text{Value: name + " description"},
	}
	for _, c := range concepts {
		kf.Components.Dimension = append(kf.Components.Dimension, nomisweb.DimensionRef{
			Codelist:   "CL_" + id + "_" + c,
			ConceptRef: c,
		})
	}
	return kf
}

// codelistDoc builds a codelist document from description/code pairs.
func codelistDoc(dataset, id string, pairs ...string) *nomisweb.Structure {
	cl := nomisweb.CodeList{AgencyID: "NOMIS", ID: id, Name: nomisweb.Text{Value: id}}
	for i := 0; i+1 < len(pairs); i += 2 {
		cl.Code = append(cl.Code, nomisweb.Code{
			Description: nomisweb.Text{Value: pairs[i]},
			Value:       nomisweb.Value(pairs[i+1]),
		})
	}
	return &nomisweb.Structure{
		Header:    nomisweb.Header{ID: dataset},
		CodeLists: &nomisweb.CodeLists{CodeList: []nomisweb.CodeList{cl}},
	}
}

const base = DefaultBaseURL

// seededTransport serves NM_1_1 with geography and sex dimensions, plus a
// second dataset with age and item.
func seededTransport() *fakeTransport {
	f := newFakeTransport()
	f.structures[base+"def.sdmx.json"] = listingDoc(
		keyFamily("NM_1_1", "Jobseeker's Allowance", "GEOGRAPHY", "SEX"),
		keyFamily("NM_7_1", "Claimant count by age", "GEOGRAPHY", "SEX", "AGE", "ITEM"),
	)
	f.structures[base+"NM_1_1/geography.def.sdmx.json"] = codelistDoc("NM_1_1", "CL_1_1_GEOGRAPHY",
		"United Kingdom", "2092957697", "Great Britain", "2092957698")
	f.structures[base+"NM_1_1/sex.def.sdmx.json"] = codelistDoc("NM_1_1", "CL_1_1_SEX",
		"Male", "1", "Female", "2", "All", "9")
	f.structures[base+"NM_7_1/geography.def.sdmx.json"] = codelistDoc("NM_7_1", "CL_7_1_GEOGRAPHY",
		"United Kingdom", "2092957697")
	f.structures[base+"NM_7_1/sex.def.sdmx.json"] = codelistDoc("NM_7_1", "CL_7_1_SEX",
		"Male", "5", "Female", "6", "Total", "7")
	f.structures[base+"NM_7_1/age.def.sdmx.json"] = codelistDoc("NM_7_1", "CL_7_1_AGE",
		"All ages", "0", "Aged 16-24", "1")
	f.structures[base+"NM_7_1/item.def.sdmx.json"] = codelistDoc("NM_7_1", "CL_7_1_ITEM",
		"Total claimants", "1")
	return f
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestClient(f *fakeTransport) *Client {
	return New(f, WithLogger(testLogger()))
}
