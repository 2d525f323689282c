// Package nomisweb provides a client for the Nomis labour-market statistics API.
//
// # Overview
//
// The service exposes two kinds of documents:
//
//   - Structure documents (*.def.sdmx.json): the dataset listing and the
//     codelist of each dimension, decoded into [Structure]
//   - Data documents (*.data.csv): observations, decoded into CSV records
//
// Code values arrive as JSON numbers or strings; [Value] normalises both to
// their literal text.
//
// # Caching
//
// Responses are cached by URL. Structure documents use the TTL passed to
// [NewClient]; CSV data uses [cache.TTLData]. Set [Client.Refresh] to bypass
// cached entries.
//
// [cache.TTLData]: github.com/matzehuels/nomiskit/pkg/cache.TTLData
package nomisweb
