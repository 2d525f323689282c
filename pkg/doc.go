// Package pkg provides the libraries behind nomis, a client for the Nomis
// UK labour-market statistics API.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [nomis] - Domain logic (catalog, metadata cache, dimension mapping,
//     geography resolution, query building)
//  2. [integrations] - HTTP transport with caching and retry, plus the
//     [integrations/nomisweb] wire client
//  3. [cache] - Response cache backends (file, redis, mongo, null)
//  4. [io] - CSV and JSON import/export of tables and codelists
//  5. [api] - Read-only JSON API over a client
//  6. [config], [errors], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow:
//
//	dataset id + plain-English parameters
//	         ↓
//	    [nomis] MetadataCache (dimensions and codelists, loaded once)
//	         ↓
//	    [nomis] Mapper (descriptions → codes)
//	         ↓
//	    [nomis] QueryBuilder (data URL)
//	         ↓
//	    [integrations/nomisweb] (cached HTTP fetch, CSV parse)
//	         ↓
//	    [nomis] Table → [io] CSV/JSON
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/nomiskit/pkg/cache"
//	    "github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
//	    "github.com/matzehuels/nomiskit/pkg/nomis"
//	)
//
//	transport := nomisweb.NewClient(cache.NewNullCache(), 0)
//	client := nomis.New(transport)
//	table, err := client.Data(ctx, "NM_1_1", nomis.DataRequest{
//	    Params: map[string]string{"sex": "Female", "geography": "2092957697"},
//	})
package pkg
