// Package integrations provides the shared HTTP client used by API clients.
//
// # Overview
//
// [Client] wraps net/http with:
//
//   - Response caching through a [cache.Cache] backend, keyed by URL
//   - Optional retry with exponential backoff for network errors and 5xx
//   - Status mapping: 404 → [ErrNotFound], everything else → [ErrNetwork]
//   - HTTP and cache events reported to [observability] hooks
//
// The Nomis API client lives in the [nomisweb] subpackage.
//
// # Client Pattern
//
//	backend, _ := cache.NewFileCache(dir)
//	client := nomisweb.NewClient(backend, 24*time.Hour)
//	s, err := client.GetStructure(ctx, url)
//
// [cache.Cache]: github.com/matzehuels/nomiskit/pkg/cache.Cache
// [observability]: github.com/matzehuels/nomiskit/pkg/observability
// [nomisweb]: github.com/matzehuels/nomiskit/pkg/integrations/nomisweb
package integrations
