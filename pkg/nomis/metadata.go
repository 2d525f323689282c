package nomis

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/observability"
)

// MetadataCache maps dataset ids to their Metadata, fetching on first use.
//
// Entries are never invalidated. An entry is stored only after the listing
// and every codelist were fetched, so a failed load leaves no trace. The lock
// is not held while fetching: concurrent first loads of the same dataset may
// fetch twice and the last one wins.
type MetadataCache struct {
	catalog   *Catalog
	transport Transport
	urls      endpoints
	logger    *log.Logger

	mu      sync.Mutex
	entries map[string]*Metadata
}

func newMetadataCache(catalog *Catalog, t Transport, urls endpoints, logger *log.Logger) *MetadataCache {
	return &MetadataCache{
		catalog:   catalog,
		transport: t,
		urls:      urls,
		logger:    logger,
		entries:   make(map[string]*Metadata),
	}
}

// Metadata returns a copy of the cached metadata for a dataset, loading it on
// a miss. Returns a DATASET_NOT_FOUND error if the listing has no such
// dataset.
func (m *MetadataCache) Metadata(ctx context.Context, datasetID string) (*Metadata, error) {
	md, err := m.get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	return md.clone(), nil
}

// get returns the shared cache entry, loading it on a miss. The result is
// read-only.
func (m *MetadataCache) get(ctx context.Context, datasetID string) (*Metadata, error) {
	if err := errs.ValidateDatasetID(datasetID); err != nil {
		return nil, err
	}
	if md := m.cached(datasetID); md != nil {
		m.logger.Debug("metadata cache hit", "dataset", datasetID)
		return md, nil
	}

	start := time.Now()
	md, err := m.load(ctx, datasetID)
	n := 0
	if md != nil {
		n = len(md.Dimensions)
	}
	observability.Resolver().OnMetadataLoad(ctx, datasetID, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[datasetID] = md
	m.mu.Unlock()
	m.logger.Debug("metadata loaded", "dataset", datasetID, "dimensions", n, "took", time.Since(start).Round(time.Millisecond))
	return md, nil
}

// Dimension returns a copy of the CodeTable of one dimension, loading
// metadata if needed. The dimension name is case-insensitive.
func (m *MetadataCache) Dimension(ctx context.Context, datasetID, dimension string) (*CodeTable, error) {
	t, err := m.dimension(ctx, datasetID, dimension)
	if err != nil {
		return nil, err
	}
	return t.clone(), nil
}

func (m *MetadataCache) dimension(ctx context.Context, datasetID, dimension string) (*CodeTable, error) {
	md, err := m.get(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	t, ok := md.Dimensions[strings.ToLower(dimension)]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnknownDimension, "dataset %s has no dimension %q", datasetID, dimension)
	}
	return t, nil
}

// Cached reports whether metadata for datasetID is already held.
func (m *MetadataCache) Cached(datasetID string) bool {
	return m.cached(datasetID) != nil
}

// Describe writes a readable dump of the named dimensions (all when none are
// given) of a dataset.
func (m *MetadataCache) Describe(ctx context.Context, w io.Writer, datasetID string, pretty bool, dims ...string) error {
	md, err := m.get(ctx, datasetID)
	if err != nil {
		return err
	}
	keys := md.Keys()
	if len(dims) > 0 {
		keys = make([]string, 0, len(dims))
		for _, d := range dims {
			d = strings.ToLower(d)
			if _, ok := md.Dimensions[d]; !ok {
				return errs.New(errs.ErrCodeUnknownDimension, "dataset %s has no dimension %q", datasetID, d)
			}
			keys = append(keys, d)
		}
	}
	return DescribeMetadata(w, md, keys, pretty)
}

func (m *MetadataCache) cached(datasetID string) *Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[datasetID]
}

func (m *MetadataCache) load(ctx context.Context, datasetID string) (*Metadata, error) {
	found, err := m.catalog.Lookup(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errs.New(errs.ErrCodeDatasetNotFound, "dataset %s not found", datasetID)
	}

	md := &Metadata{Dataset: found[0], Dimensions: make(map[string]*CodeTable)}
	for _, key := range md.Keys() {
		m.logger.Debug("fetching codelist", "dataset", datasetID, "dimension", key)
		s, err := m.transport.Structure(ctx, m.urls.codelist(datasetID, key, nil))
		if err != nil {
			return nil, err
		}
		md.Dimensions[key] = newCodeTable(s)
	}
	return md, nil
}
