package nomis

import (
	"context"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
)

// Codes fetches the codelist of any dimension of a dataset, optionally
// narrowed by query params (e.g. geography). Unlike metadata lookups the
// result is not held in the MetadataCache.
func (c *Client) Codes(ctx context.Context, datasetID, dimension string, params map[string]string) (*CodeTable, error) {
	if err := errs.ValidateDatasetID(datasetID); err != nil {
		return nil, err
	}
	if err := errs.ValidateDimension(dimension); err != nil {
		return nil, err
	}
	s, err := c.transport.Structure(ctx, c.urls.codelist(datasetID, dimension, params))
	if err != nil {
		return nil, err
	}
	return newCodeTable(s), nil
}

// Items fetches the item codelist of a dataset for an optional geography and
// sex. sex may be given as a description ("Female") and is mapped first.
func (c *Client) Items(ctx context.Context, datasetID, geography, sex string) (*CodeTable, error) {
	params := map[string]string{}
	if geography != "" {
		params["geography"] = geography
	}
	if sex != "" {
		mapped, err := c.Mapper.Resolve(ctx, datasetID, "sex", sex)
		if err != nil {
			return nil, err
		}
		params["sex"] = mapped
	}
	return c.Codes(ctx, datasetID, "item", params)
}
