// Package io writes and reads data tables and codelists as CSV or JSON.
//
// # Formats
//
// CSV output of a data table is the service's own column layout plus the
// trailing _Code column. JSON output mirrors [nomis.Table]:
//
//	{
//	  "columns": ["GEOGRAPHY_CODE", "OBS_VALUE", "_Code"],
//	  "rows": [["K02000001", "1200", "NM_1_1"]]
//	}
//
// Codelists are written with one row per code ([WriteCodes]).
//
// # Files
//
// [ExportTable] and [ImportTable] pick the format from the file extension:
// ".json" is JSON, anything else CSV. Exported tables re-import unchanged.
//
// [nomis.Table]: github.com/matzehuels/nomiskit/pkg/nomis.Table
package io
