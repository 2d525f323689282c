package api

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/integrations"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error to an HTTP status: not found → 404, invalid
// input → 400, upstream failure → 502, anything else → 500.
func statusFor(err error) int {
	switch errs.GetCode(err) {
	case errs.ErrCodeNotFound, errs.ErrCodeDatasetNotFound, errs.ErrCodeUnknownDimension:
		return http.StatusNotFound
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidDataset, errs.ErrCodeInvalidDimension,
		errs.ErrCodeInvalidParam, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeNetwork, errs.ErrCodeTimeout:
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, integrations.ErrNetwork), errors.Is(err, integrations.ErrMalformed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	body := errorBody{Error: err.Error(), RequestID: RequestID(r.Context())}
	if code := errs.GetCode(err); code != "" {
		body.Code = string(code)
		body.Error = errs.UserMessage(err)
	}
	writeJSON(w, status, body)
}
