package nomis

import (
	"context"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
)

// Catalog discovers datasets through the service listing.
//
// The unfiltered listing is fetched once and kept for the lifetime of the
// Catalog; searches go to the service each time.
type Catalog struct {
	transport Transport
	urls      endpoints
	logger    *log.Logger

	mu      sync.Mutex
	listing []Dataset
}

func newCatalog(t Transport, urls endpoints, logger *log.Logger) *Catalog {
	return &Catalog{transport: t, urls: urls, logger: logger}
}

// Datasets returns the datasets matching a server-side search term.
// An empty search returns the full listing.
func (c *Catalog) Datasets(ctx context.Context, search string) ([]Dataset, error) {
	if search == "" {
		all, err := c.all(ctx)
		if err != nil {
			return nil, err
		}
		return cloneDatasets(all), nil
	}
	s, err := c.transport.Structure(ctx, c.urls.listing(search))
	if err != nil {
		return nil, err
	}
	return parseDatasets(s), nil
}

// Lookup returns the listing entries whose id is in ids, in listing order.
// With no ids it returns the whole listing.
func (c *Catalog) Lookup(ctx context.Context, ids ...string) ([]Dataset, error) {
	all, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return cloneDatasets(all), nil
	}
	var out []Dataset
	for _, d := range all {
		if slices.Contains(ids, d.ID) {
			out = append(out, d.clone())
		}
	}
	return out, nil
}

// Property returns one field of a dataset's listing entry: "name",
// "description", "agency" or "id" (alias "idx"). Unknown datasets and
// properties yield "".
func (c *Catalog) Property(ctx context.Context, id, prop string) (string, error) {
	if id == "" || prop == "" {
		return "", nil
	}
	found, err := c.Lookup(ctx, id)
	if err != nil || len(found) == 0 {
		return "", err
	}
	d := found[0]
	switch prop {
	case "name":
		return d.Name, nil
	case "description":
		return d.Description, nil
	case "agency":
		return d.Agency, nil
	case "id", "idx":
		return d.ID, nil
	}
	return "", nil
}

// all returns the memoised listing itself. Callers inside the package must
// not modify it; exported methods hand out copies.
func (c *Catalog) all(ctx context.Context) ([]Dataset, error) {
	c.mu.Lock()
	listing := c.listing
	c.mu.Unlock()
	if listing != nil {
		return listing, nil
	}

	s, err := c.transport.Structure(ctx, c.urls.listing(""))
	if err != nil {
		return nil, err
	}
	listing = parseDatasets(s)
	c.logger.Debug("dataset listing loaded", "datasets", len(listing))

	c.mu.Lock()
	c.listing = listing
	c.mu.Unlock()
	return listing, nil
}

func parseDatasets(s *nomisweb.Structure) []Dataset {
	out := []Dataset{}
	if s.KeyFamilies == nil {
		return out
	}
	for _, kf := range s.KeyFamilies.KeyFamily {
		d := Dataset{
			Agency: kf.AgencyID,
			ID:     kf.ID,
			Name:   kf.Name.Value,
		}
		if kf.Description != nil {
			d.Description = kf.Description.Value
		}
		for _, dim := range kf.Components.Dimension {
			d.Dimensions = append(d.Dimensions, Dimension{Codelist: dim.Codelist, Concept: dim.ConceptRef})
		}
		out = append(out, d)
	}
	return out
}

func cloneDatasets(ds []Dataset) []Dataset {
	out := make([]Dataset, len(ds))
	for i, d := range ds {
		out[i] = d.clone()
	}
	return out
}
