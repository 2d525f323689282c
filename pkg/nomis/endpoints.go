package nomis

import (
	"strings"

	"github.com/matzehuels/nomiskit/pkg/integrations"
)

// DefaultBaseURL is the root of the public Nomis dataset API.
const DefaultBaseURL = "https://www.nomisweb.co.uk/api/v01/dataset/"

// endpoints renders the service URL shapes under a base URL that always
// ends with "/".
type endpoints struct {
	base string
}

func newEndpoints(base string) endpoints {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return endpoints{base: base}
}

// listing: <base>def.sdmx.json[?search=<term>]
func (e endpoints) listing(search string) string {
	var q map[string]string
	if search != "" {
		q = map[string]string{"search": search}
	}
	return e.base + "def.sdmx.json" + integrations.EncodeQuery(q)
}

// codelist: <base><id>/<dim>.def.sdmx.json[?<params>]
func (e endpoints) codelist(id, dim string, params map[string]string) string {
	return e.base + id + "/" + strings.ToLower(dim) + ".def.sdmx.json" + integrations.EncodeQuery(params)
}

// geography: <base><id>/geography[/<value>].def.sdmx.json[?search=<term>]
// Each element of a comma list is escaped; the commas are not.
func (e endpoints) geography(id, value, search string) string {
	path := e.base + id + "/geography"
	if value != "" {
		path += "/" + integrations.PathEscapeList(value)
	}
	var q map[string]string
	if search != "" {
		q = map[string]string{"search": search}
	}
	return path + ".def.sdmx.json" + integrations.EncodeQuery(q)
}

// data: <base><id>.data.csv[?<params>]
func (e endpoints) data(id string, params map[string]string) string {
	return e.base + id + ".data.csv" + integrations.EncodeQuery(params)
}
