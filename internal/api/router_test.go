package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "go-sft-pipeline/docs"
	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/store"
	"go-sft-pipeline/pkg/router"
)

func testRouter(t *testing.T) *router.Router {
	t.Helper()
	if err := store.InitDB(filepath.Join(t.TempDir(), "runs.db")); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	r := router.New()
	RegisterRoutes(r, &config.Config{Source: config.SourceConfig{
		Data: config.DataConfig{
			InputPath:  t.TempDir(),
			OutputPath: t.TempDir(),
			TrainSplit: 0.9,
		},
	}})
	return r
}

func TestRegisteredRoutes(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/runs", http.StatusOK},
		{http.MethodGet, "/api/v1/datasets/toolace/output", http.StatusOK},
		{http.MethodPost, "/api/v1/datasets/not_registered/runs", http.StatusNotFound},
		{http.MethodGet, "/api/v1/runs/absent-run", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/runs", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.status)
		}
	}
}

func TestSwaggerRoute(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("swagger UI status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("swagger doc status = %d, want 200", rec.Code)
	}
}
