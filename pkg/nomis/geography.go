package nomis

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
)

// GeographyDataset is the dataset whose geography codelists are browsed when
// a request names none.
const GeographyDataset = "NM_1_1"

// DefaultAreaType is the area type used for postcode lookups when none is given.
const DefaultAreaType = "district"

// Helpers maps shortcut names to area-type geography codes.
var Helpers = map[string]string{
	"UK_WPC_2010": "2092957697TYPE460", // Westminster parliamentary constituencies
	"LA_district": "2092957697TYPE464", // local authority districts
}

// areaTypes maps postcode area-type names to service type codes.
var areaTypes = map[string]string{
	"district": "486",
}

// GeoRequest selects geographies. All fields are optional.
//
// Value is the geography the listing is taken under (empty for the top
// level). Description drills one level down into the child with exactly that
// description. Search filters by description substring. Helper replaces Value
// with a named shortcut. Chase expands Value into its children first.
type GeoRequest struct {
	Dataset     string `json:"dataset,omitempty"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
	Search      string `json:"search,omitempty"`
	Helper      string `json:"helper,omitempty"`
	Chase       bool   `json:"chase,omitempty"`
}

// GeographyResolver walks the geography hierarchy of the service.
type GeographyResolver struct {
	transport Transport
	urls      endpoints
	logger    *log.Logger
}

func newGeographyResolver(t Transport, urls endpoints, logger *log.Logger) *GeographyResolver {
	return &GeographyResolver{transport: t, urls: urls, logger: logger}
}

// Resolve runs the request through, in order: helper substitution, chase,
// listing under Value, drill-down by Description and the Search filter.
//
// An unknown helper leaves Value and Description untouched. Transport errors
// are returned as is; no match is an empty table, not an error.
func (g *GeographyResolver) Resolve(ctx context.Context, req GeoRequest) (*CodeTable, error) {
	dataset := req.Dataset
	if dataset == "" {
		dataset = GeographyDataset
	}
	if err := errs.ValidateDatasetID(dataset); err != nil {
		return nil, err
	}

	value, desc := req.Value, req.Description
	if req.Helper != "" {
		if code, ok := Helpers[req.Helper]; ok {
			value, desc = code, ""
		} else {
			g.logger.Debug("unknown geography helper", "helper", req.Helper)
		}
	}

	if req.Chase {
		children, err := g.List(ctx, dataset, value)
		if err != nil {
			return nil, err
		}
		if req.Search != "" {
			children = children.Filter(req.Search)
		}
		if children.Len() > 0 {
			value = strings.Join(children.Values(), ",")
			g.logger.Debug("chased geography", "children", children.Len(), "value", value)
		}
	}

	geog, err := g.List(ctx, dataset, value)
	if err != nil {
		return nil, err
	}

	if desc != "" {
		if code, ok := geog.Lookup(desc); ok {
			g.logger.Debug("drilling into geography", "description", desc, "code", code)
			if geog, err = g.List(ctx, dataset, code); err != nil {
				return nil, err
			}
		}
	}

	if req.Search != "" {
		geog = geog.Filter(req.Search)
	}
	return geog, nil
}

// List returns the geographies directly under value (top level when empty).
func (g *GeographyResolver) List(ctx context.Context, dataset, value string) (*CodeTable, error) {
	if err := errs.ValidateGeographyValue(value); err != nil {
		return nil, err
	}
	s, err := g.transport.Structure(ctx, g.urls.geography(dataset, value, ""))
	if err != nil {
		return nil, err
	}
	return newCodeTable(s), nil
}

// PostcodeGeography returns the geography token that asks the service to
// resolve a postcode to the containing area of the given type. An empty
// areaType means "district"; unknown names are passed through as the type
// code.
func PostcodeGeography(postcode, areaType string) string {
	if areaType == "" {
		areaType = DefaultAreaType
	}
	if code, ok := areaTypes[areaType]; ok {
		areaType = code
	}
	return "POSTCODE|" + postcode + ";" + areaType
}
