package nomisweb

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/nomiskit/pkg/buildinfo"
	"github.com/matzehuels/nomiskit/pkg/cache"
	"github.com/matzehuels/nomiskit/pkg/integrations"
)

// Client fetches structure documents and CSV data from the Nomis API.
//
// Structure documents are cached for the TTL given to [NewClient]; CSV data
// uses the shorter [cache.TTLData]. All methods are safe for concurrent use.
type Client struct {
	meta *integrations.Client
	data *integrations.Client

	// Refresh bypasses cached responses (they are still rewritten).
	Refresh bool
}

// NewClient creates a Nomis client over the given cache backend.
// A nil backend disables response caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	if cacheTTL <= 0 {
		cacheTTL = cache.TTLHTTP
	}
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		meta: integrations.NewClient(backend, "nomis:", cacheTTL, headers, opts...),
		data: integrations.NewClient(backend, "nomis:data:", cache.TTLData, map[string]string{"User-Agent": buildinfo.UserAgent()}, opts...),
	}
}

// Structure fetches and decodes a *.def.sdmx.json document.
//
// Returns [integrations.ErrNotFound] for 404 and [integrations.ErrNetwork]
// for other HTTP failures.
func (c *Client) Structure(ctx context.Context, url string) (*Structure, error) {
	var resp Response
	err := c.meta.Cached(ctx, url, c.Refresh, &resp, func() error {
		return c.meta.Get(ctx, url, &resp)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: nomis %s", err, url)
		}
		return nil, err
	}
	return &resp.Structure, nil
}

// CSV fetches a CSV document and returns its records, header row first.
func (c *Client) CSV(ctx context.Context, url string) ([][]string, error) {
	var text string
	err := c.data.Cached(ctx, url, c.Refresh, &text, func() error {
		var err error
		text, err = c.data.GetText(ctx, url)
		return err
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: nomis %s", err, url)
		}
		return nil, err
	}
	return ParseCSV(text)
}

// ParseCSV splits a CSV body into records. An empty body yields no records.
func ParseCSV(text string) ([][]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", integrations.ErrMalformed, err)
	}
	return records, nil
}
