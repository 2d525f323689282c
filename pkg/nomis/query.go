package nomis

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/observability"
)

// baseColumns is the default projection; named dimension columns are
// inserted before the last entry.
var baseColumns = []string{
	"geography_code", "geography_name", "measures_name", "measures",
	"date_code", "date_name", "obs_value",
}

// namedDimensions get a "<dim>_name" column when present in a query.
var namedDimensions = []string{"sex", "age", "item"}

// DataRequest describes a data query.
//
// Params holds query parameters keyed by name; values for dataset dimensions
// may be codes or descriptions. Postcode, when set and Params has no
// geography, becomes a postcode geography token of AreaType.
type DataRequest struct {
	Postcode string            `json:"postcode,omitempty"`
	AreaType string            `json:"area_type,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// QueryBuilder assembles data query URLs.
type QueryBuilder struct {
	metadata *MetadataCache
	mapper   *Mapper
	urls     endpoints
	logger   *log.Logger
}

func newQueryBuilder(md *MetadataCache, mapper *Mapper, urls endpoints, logger *log.Logger) *QueryBuilder {
	return &QueryBuilder{metadata: md, mapper: mapper, urls: urls, logger: logger}
}

// DataURL returns the CSV data URL for datasetID.
//
// Every parameter named after a dimension of the dataset is mapped to codes,
// time defaults to "latest" unless date or time is given, and a default
// select projection is added unless one is given. The request is not
// modified. Output is deterministic for identical inputs and cache state.
func (q *QueryBuilder) DataURL(ctx context.Context, datasetID string, req DataRequest) (string, error) {
	md, err := q.metadata.get(ctx, datasetID)
	if err != nil {
		return "", err
	}

	params := maps.Clone(req.Params)
	if params == nil {
		params = make(map[string]string)
	}
	for k := range params {
		if err := errs.ValidateParamKey(k); err != nil {
			return "", err
		}
	}

	if _, ok := params["geography"]; !ok && req.Postcode != "" {
		params["geography"] = PostcodeGeography(req.Postcode, req.AreaType)
	}

	for _, k := range slices.Sorted(maps.Keys(params)) {
		if _, ok := md.Dimensions[k]; !ok {
			continue
		}
		mapped, err := q.mapper.Resolve(ctx, datasetID, k, params[k])
		if err != nil {
			return "", err
		}
		params[k] = mapped
	}

	_, hasDate := params["date"]
	_, hasTime := params["time"]
	if !hasDate && !hasTime {
		params["time"] = "latest"
	}

	if _, ok := params["select"]; !ok {
		params["select"] = strings.Join(projection(params), ",")
	}

	u := q.urls.data(datasetID, params)
	observability.Resolver().OnURLBuilt(ctx, datasetID, len(params))
	q.logger.Debug("built data url", "dataset", datasetID, "url", u)
	return u, nil
}

func projection(params map[string]string) []string {
	cols := slices.Clone(baseColumns)
	for _, dim := range namedDimensions {
		if _, ok := params[dim]; ok {
			cols = slices.Insert(cols, len(cols)-1, dim+"_name")
		}
	}
	return cols
}
