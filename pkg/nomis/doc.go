// Package nomis resolves human-readable queries against the Nomis
// labour-market statistics API into data URLs and tables.
//
// # Overview
//
// A [Client] bundles the resolution components over one [Transport]:
//
//   - [Catalog] lists and looks up datasets
//   - [MetadataCache] loads each dataset's dimensions and codelists once
//   - [Mapper] rewrites descriptions such as "Female" into codes such as "2"
//   - [GeographyResolver] browses the geography hierarchy (helpers, chase,
//     drill-down, search)
//   - [QueryBuilder] assembles the final data URL
//
// # Usage
//
//	transport := nomisweb.NewClient(backend, 24*time.Hour)
//	c := nomis.New(transport)
//
//	u, err := c.Query.DataURL(ctx, "NM_1_1", nomis.DataRequest{
//		Params: map[string]string{"sex": "Male,Female", "geography": "2092957697"},
//	})
//
// # Description Mapping
//
// Mapping is literal and case-insensitive. The longest description matching
// at each position wins, so "Female" never turns into the code for "Male".
// Unmatched text passes through unchanged.
//
// # Caching
//
// [MetadataCache] entries live as long as the Client and are never
// invalidated. HTTP-level caching is the Transport's concern.
package nomis
