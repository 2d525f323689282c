package nomis

import (
	"github.com/charmbracelet/log"
)

// Client wires the resolution components over one Transport and one
// MetadataCache. The components are exported for direct use; they share
// state, so build one Client per session rather than per call.
type Client struct {
	Catalog   *Catalog
	Metadata  *MetadataCache
	Mapper    *Mapper
	Geography *GeographyResolver
	Query     *QueryBuilder

	transport Transport
	urls      endpoints
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL string
	logger  *log.Logger
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithLogger sets the logger for debug output. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Client over t.
func New(t Transport, opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	urls := newEndpoints(o.baseURL)
	catalog := newCatalog(t, urls, o.logger)
	md := newMetadataCache(catalog, t, urls, o.logger)
	mapper := newMapper(md, o.logger)
	return &Client{
		Catalog:   catalog,
		Metadata:  md,
		Mapper:    mapper,
		Geography: newGeographyResolver(t, urls, o.logger),
		Query:     newQueryBuilder(md, mapper, urls, o.logger),
		transport: t,
		urls:      urls,
		logger:    o.logger,
	}
}

// BaseURL returns the service root all URLs are built under.
func (c *Client) BaseURL() string { return c.urls.base }
