package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/pipeline"
	"go-sft-pipeline/internal/store"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	if err := store.InitDB(filepath.Join(t.TempDir(), "runs.db")); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return New(&config.Config{Source: config.SourceConfig{
		Data: config.DataConfig{
			InputPath:   t.TempDir(),
			OutputPath:  t.TempDir(),
			DatasetName: []string{"toolace"},
			TrainSplit:  0.8,
		},
	}})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		path, prefix, suffix string
		expected             string
		ok                   bool
	}{
		{"/api/v1/datasets/toolace/runs", "/api/v1/datasets/", "/runs", "toolace", true},
		{"/api/v1/runs/run-1", "/api/v1/runs/", "", "run-1", true},
		{"/api/v1/runs/run-1/errors", "/api/v1/runs/", "/errors", "run-1", true},
		{"/api/v1/datasets/a/b/runs", "/api/v1/datasets/", "/runs", "", false},
		{"/other/toolace/runs", "/api/v1/datasets/", "/runs", "", false},
	}
	for _, tt := range tests {
		got, ok := pathParam(tt.path, tt.prefix, tt.suffix)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("pathParam(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestStartDatasetRun(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets/toolace/runs", nil)
	rec := httptest.NewRecorder()
	h.StartDatasetRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)

	runID, _ := body["runID"].(string)
	if runID == "" {
		t.Fatal("response must carry the launched run ID")
	}
	if body["dataset"] != "toolace" {
		t.Errorf("dataset = %v", body["dataset"])
	}

	// The run record is written before the response is sent.
	if _, err := store.GetRun(runID); err != nil {
		t.Errorf("launched run not tracked: %v", err)
	}
}

func TestStartDatasetRunUnknownDataset(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets/not_registered/runs", nil)
	rec := httptest.NewRecorder()
	h.StartDatasetRun(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStartAggregateRun(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/aggregate/runs", nil)
	rec := httptest.NewRecorder()
	h.StartAggregateRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	runID, _ := body["runID"].(string)
	if runID == "" {
		t.Fatal("response must carry the launched run ID")
	}

	run, err := store.GetRun(runID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Dataset != pipeline.AggregateRunName {
		t.Errorf("run tracked under %q, want %q", run.Dataset, pipeline.AggregateRunName)
	}
}

func TestGetRun(t *testing.T) {
	h := testHandler(t)
	if err := store.CreateRun("run-1", "toolace"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-1", nil)
	rec := httptest.NewRecorder()
	h.GetRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["run_id"] != "run-1" || body["status"] != "pending" {
		t.Errorf("unexpected run payload: %v", body)
	}
}

func TestGetRunNotFound(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/absent", nil)
	rec := httptest.NewRecorder()
	h.GetRun(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListRuns(t *testing.T) {
	h := testHandler(t)
	for _, id := range []string{"run-a", "run-b"} {
		if err := store.CreateRun(id, "openhermes2_5"); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	h.ListRuns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var runs []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("response is not a JSON array: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestGetRunErrors(t *testing.T) {
	h := testHandler(t)
	if err := store.CreateRun("run-e", "toolace"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-e/errors", nil)
	rec := httptest.NewRecorder()
	h.GetRunErrors(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["run_id"] != "run-e" || body["count"] != float64(0) {
		t.Errorf("unexpected payload: %v", body)
	}
}

func TestGetDatasetOutput(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets/toolace/output", nil)
	rec := httptest.NewRecorder()
	h.GetDatasetOutput(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["exists"] != false {
		t.Errorf("output should not exist yet: %v", body)
	}
	if body["file_type"] != "json" {
		t.Errorf("file_type = %v, want json", body["file_type"])
	}
}

func TestGetDatasetOutputUnknownDataset(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets/absent/output", nil)
	rec := httptest.NewRecorder()
	h.GetDatasetOutput(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
