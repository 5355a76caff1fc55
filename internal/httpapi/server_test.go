package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"traind/pkg/types"
)

type fakeService struct {
	status   types.StatusResponse
	datasets []types.Dataset
	ready    bool
}

func (f *fakeService) Status() types.StatusResponse { return f.status }
func (f *fakeService) Datasets() []types.Dataset    { return f.datasets }
func (f *fakeService) Ready() bool                  { return f.ready }

func TestStatusEndpoint(t *testing.T) {
	svc := &fakeService{
		status: types.StatusResponse{State: "training", Epoch: 3, MaxEpochs: 10, BestEpoch: 1, BestValue: 0.5},
		ready:  true,
	}
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	var got types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State != "training" || got.Epoch != 3 || got.BestValue != 0.5 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestDatasetsEndpoint(t *testing.T) {
	svc := &fakeService{datasets: []types.Dataset{{ID: "a.csv"}, {ID: "b.csv"}}}
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/datasets")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var got types.DatasetsResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Datasets) != 2 || got.Datasets[0].ID != "a.csv" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestHealthAndReady(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(NewMux(svc))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("get readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("readyz while not ready: %d", resp.StatusCode)
	}

	svc.ready = true
	resp, err = http.Get(srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("get readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz while ready: %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httptest.NewServer(NewMux(&fakeService{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics %d", resp.StatusCode)
	}
}

func TestCORSEnabled(t *testing.T) {
	SetCORSOptions(true, []string{"*"}, []string{"GET"}, nil)
	defer SetCORSOptions(false, nil, nil, nil)

	srv := httptest.NewServer(NewMux(&fakeService{}))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin %q", got)
	}
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONError(rec, http.StatusBadRequest, "bad input")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code %d", rec.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "bad input" || body.Code != http.StatusBadRequest {
		t.Fatalf("body %+v", body)
	}
}
