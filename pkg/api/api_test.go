package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/nomiskit/pkg/errors"
	"github.com/matzehuels/nomiskit/pkg/integrations"
	"github.com/matzehuels/nomiskit/pkg/integrations/nomisweb"
	"github.com/matzehuels/nomiskit/pkg/nomis"
)

const listing = `{"structure":{"header":{"id":"none"},"keyfamilies":{"keyfamily":[
{"agencyid":"NOMIS","id":"NM_1_1","name":{"value":"Jobseeker's Allowance"},
"components":{"dimension":[{"codelist":"CL_1_1_SEX","conceptref":"SEX"}]}}]}}}`

const sexCodes = `{"structure":{"header":{"id":"NM_1_1"},"codelists":{"codelist":[{"agencyid":"NOMIS",
"id":"CL_1_1_SEX","name":{"value":"sex"},"code":[
{"description":{"value":"Male"},"value":5},{"description":{"value":"Female"},"value":6}]}]}}}`

const geoCodes = `{"structure":{"header":{"id":"NM_1_1"},"codelists":{"codelist":[{"agencyid":"NOMIS",
"id":"CL_1_1_GEOGRAPHY","name":{"value":"geography"},"code":[
{"description":{"value":"Leeds"},"value":1},{"description":{"value":"Leicester"},"value":2}]}]}}}`

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/def.sdmx.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listing))
	})
	mux.HandleFunc("/NM_1_1/sex.def.sdmx.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sexCodes))
	})
	mux.HandleFunc("/NM_1_1/geography.def.sdmx.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geoCodes))
	})
	mux.HandleFunc("/NM_1_1.data.csv", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sex") != "6" {
			http.Error(w, "bad sex", http.StatusBadRequest)
			return
		}
		w.Write([]byte("GEOGRAPHY_NAME,OBS_VALUE\nLeeds,10\n"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testServer(t *testing.T) *Server {
	t.Helper()
	up := upstream(t)
	logger := log.New(io.Discard)
	transport := nomisweb.NewClient(nil, time.Hour)
	client := nomis.New(transport, nomis.WithBaseURL(up.URL+"/"), nomis.WithLogger(logger))
	return New(client, Config{}, logger)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestRequestIDReplacedWhenUnsafe(t *testing.T) {
	s := testServer(t)
	tests := []struct {
		name string
		id   string
	}{
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
		{"spaces", "abc 123"},
		{"markup", "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(requestIDHeader, tt.id)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			got := rec.Header().Get(requestIDHeader)
			if got == tt.id {
				t.Errorf("client id %q echoed back", tt.id)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request id = %q, want generated uuid", got)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("b", maxRequestIDLen))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); len(got) != maxRequestIDLen || got[0] != 'b' {
		t.Errorf("id at the limit should be kept, got %q", got)
	}
}

func TestListDatasets(t *testing.T) {
	rec := get(t, testServer(t), "/datasets")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Datasets []nomis.Dataset `json:"datasets"`
	}
	decode(t, rec, &body)
	if len(body.Datasets) != 1 || body.Datasets[0].ID != "NM_1_1" {
		t.Errorf("datasets = %+v", body.Datasets)
	}
}

func TestGetDataset(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/datasets/NM_1_1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = get(t, s, "/datasets/NM_404_1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown dataset status = %d", rec.Code)
	}
	var body errorBody
	decode(t, rec, &body)
	if body.Code != string(errs.ErrCodeDatasetNotFound) || body.RequestID == "" {
		t.Errorf("error body = %+v", body)
	}
}

func TestGetDimensions(t *testing.T) {
	rec := get(t, testServer(t), "/datasets/NM_1_1/dimensions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var md nomis.Metadata
	decode(t, rec, &md)
	if md.Dimensions["sex"].Len() != 2 {
		t.Errorf("sex codes = %+v", md.Dimensions["sex"])
	}
}

func TestGetURL(t *testing.T) {
	rec := get(t, testServer(t), "/datasets/NM_1_1/url?sex=Female&postcode=SW1A+1AA")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decode(t, rec, &body)
	u := body["url"]
	for _, want := range []string{"sex=6", "geography=POSTCODE%7CSW1A+1AA%3B486", "time=latest", "sex_name%2Cobs_value"} {
		if !strings.Contains(u, want) {
			t.Errorf("url %s missing %s", u, want)
		}
	}
	if strings.Contains(u, "postcode=") {
		t.Errorf("reserved parameter forwarded: %s", u)
	}
}

func TestGetData(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/datasets/NM_1_1/data?sex=Female")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var table nomis.Table
	decode(t, rec, &table)
	if table.Len() != 1 || table.Columns[len(table.Columns)-1] != nomis.CodeColumn {
		t.Errorf("table = %+v", table)
	}

	rec = get(t, s, "/datasets/NM_1_1/data?sex=Female&format=csv")
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "GEOGRAPHY_NAME,OBS_VALUE,_Code\n") {
		t.Errorf("csv = %q", rec.Body.String())
	}

	rec = get(t, s, "/datasets/NM_1_1/data?format=xml")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d", rec.Code)
	}
}

func TestGetGeography(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/geography?search=Lei")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var table nomis.CodeTable
	decode(t, rec, &table)
	if table.Len() != 1 || table.Rows[0].Value != "2" {
		t.Errorf("table = %+v", table)
	}

	rec = get(t, s, "/geography?chase=maybe")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad chase status = %d", rec.Code)
	}
}

func TestGetGeographyUnsafeValue(t *testing.T) {
	s := testServer(t)

	rec := get(t, s, "/geography?value=50%25")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("percent status = %d: %s", rec.Code, rec.Body.String())
	}

	// Whitespace is escaped into the upstream path, which the service does not know.
	rec = get(t, s, "/geography?value=E06%20000001")
	if rec.Code != http.StatusNotFound {
		t.Errorf("whitespace status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetPostcode(t *testing.T) {
	rec := get(t, testServer(t), "/postcode/LS1%201AA")
	var body map[string]string
	decode(t, rec, &body)
	if body["geography"] != "POSTCODE|LS1 1AA;486" {
		t.Errorf("geography = %q", body["geography"])
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"dataset not found", errs.New(errs.ErrCodeDatasetNotFound, "x"), http.StatusNotFound},
		{"unknown dimension", errs.New(errs.ErrCodeUnknownDimension, "x"), http.StatusNotFound},
		{"invalid dataset", errs.New(errs.ErrCodeInvalidDataset, "x"), http.StatusBadRequest},
		{"invalid param", errs.New(errs.ErrCodeInvalidParam, "x"), http.StatusBadRequest},
		{"upstream 404", fmt.Errorf("%w: nomis url", integrations.ErrNotFound), http.StatusNotFound},
		{"upstream network", fmt.Errorf("%w: status 503", integrations.ErrNetwork), http.StatusBadGateway},
		{"malformed", integrations.ErrMalformed, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
