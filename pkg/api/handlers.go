package api

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/nomiskit/pkg/buildinfo"
	errs "github.com/matzehuels/nomiskit/pkg/errors"
	nio "github.com/matzehuels/nomiskit/pkg/io"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

// Query parameters consumed by the url and data endpoints rather than
// forwarded to the service.
var reservedParams = map[string]bool{
	"postcode":  true,
	"area_type": true,
	"format":    true,
}

// Handler serves the API routes.
type Handler struct {
	client *nomis.Client
	logger *log.Logger
}

func NewHandler(client *nomis.Client, logger *log.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Get("/datasets", h.ListDatasets)
	r.Route("/datasets/{id}", func(r chi.Router) {
		r.Get("/", h.GetDataset)
		r.Get("/dimensions", h.GetDimensions)
		r.Get("/codes/{dimension}", h.GetCodes)
		r.Get("/url", h.GetURL)
		r.Get("/data", h.GetData)
	})

	r.Get("/geography", h.GetGeography)
	r.Get("/postcode/{postcode}", h.GetPostcode)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// ListDatasets returns the dataset listing, optionally searched with ?search=.
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.client.Catalog.Datasets(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": datasets})
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateDatasetID(id); err != nil {
		h.writeError(w, r, err)
		return
	}
	found, err := h.client.Catalog.Lookup(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(found) == 0 {
		h.writeError(w, r, errs.New(errs.ErrCodeDatasetNotFound, "dataset %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, found[0])
}

// GetDimensions returns the cached metadata of a dataset.
func (h *Handler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	md, err := h.client.Metadata.Metadata(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}

// GetCodes returns one dimension's codelist; query parameters narrow it.
func (h *Handler) GetCodes(w http.ResponseWriter, r *http.Request) {
	table, err := h.client.Codes(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "dimension"), queryParams(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// GetURL returns the data URL for the query parameters.
func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) {
	u, err := h.client.Query.DataURL(r.Context(), chi.URLParam(r, "id"), dataRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// GetData fetches data as JSON (default) or CSV with ?format=csv.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	format := nio.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = nio.ParseFormat(f); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	table, err := h.client.Data(r.Context(), chi.URLParam(r, "id"), dataRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if format == nio.FormatCSV {
		w.Header().Set("Content-Type", "text/csv")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if err := nio.WriteTable(table, w, format); err != nil {
		h.logger.Error("write data", "id", RequestID(r.Context()), "err", err)
	}
}

// GetGeography resolves geographies from dataset, value, desc, search,
// helper and chase query parameters.
func (h *Handler) GetGeography(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := nomis.GeoRequest{
		Dataset:     q.Get("dataset"),
		Value:       q.Get("value"),
		Description: q.Get("desc"),
		Search:      q.Get("search"),
		Helper:      q.Get("helper"),
	}
	if c := q.Get("chase"); c != "" {
		chase, err := strconv.ParseBool(c)
		if err != nil {
			h.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid chase value %q", c))
			return
		}
		req.Chase = chase
	}

	table, err := h.client.Geography.Resolve(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) GetPostcode(w http.ResponseWriter, r *http.Request) {
	token := nomis.PostcodeGeography(chi.URLParam(r, "postcode"), r.URL.Query().Get("area_type"))
	writeJSON(w, http.StatusOK, map[string]string{"geography": token})
}

func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for k, v := range r.URL.Query() {
		if reservedParams[k] || len(v) == 0 {
			continue
		}
		params[k] = v[0]
	}
	return params
}

func dataRequest(r *http.Request) nomis.DataRequest {
	q := r.URL.Query()
	return nomis.DataRequest{
		Postcode: q.Get("postcode"),
		AreaType: q.Get("area_type"),
		Params:   queryParams(r),
	}
}
