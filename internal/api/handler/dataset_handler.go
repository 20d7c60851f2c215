package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/pipeline"
	"go-sft-pipeline/internal/store"
	"go-sft-pipeline/pkg/utils"
)

// Handler serves the dataset-processing API. Runs launched over HTTP execute
// in the background; clients poll the run endpoints for status.
type Handler struct {
	Cfg    *config.Config
	Output *utils.OutputManager
}

// New builds a Handler over a loaded configuration.
func New(cfg *config.Config) *Handler {
	return &Handler{
		Cfg:    cfg,
		Output: utils.NewOutputManager(cfg.Source.Data.OutputPath),
	}
}

// StartDatasetRun launches one adapter run
// @Summary Process a dataset
// @Description Launch a normalization run for one registered dataset
// @Tags datasets
// @Accept json
// @Produce json
// @Param name path string true "Dataset name"
// @Success 200 {object} map[string]interface{} "Run launched"
// @Failure 404 {object} map[string]interface{} "Unknown dataset"
// @Router /datasets/{name}/runs [post]
func (h *Handler) StartDatasetRun(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r.URL.Path, "/api/v1/datasets/", "/runs")
	if !ok || name == "" {
		http.Error(w, "Dataset name is required", http.StatusBadRequest)
		return
	}
	if _, err := pipeline.Lookup(name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	runID := uuid.New().String()
	if err := store.CreateRun(runID, name); err != nil {
		http.Error(w, "Failed to record run", http.StatusInternalServerError)
		return
	}

	go pipeline.ExecuteRun(h.Cfg, name, runID)

	writeJSON(w, map[string]interface{}{
		"message":   "Dataset run launched",
		"runID":     runID,
		"dataset":   name,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// StartAggregateRun launches an aggregation-and-split run
// @Summary Aggregate and split
// @Description Launch aggregation of all configured canonical datasets plus the train/test split
// @Tags datasets
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Run launched"
// @Router /aggregate/runs [post]
func (h *Handler) StartAggregateRun(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()
	if err := store.CreateRun(runID, pipeline.AggregateRunName); err != nil {
		http.Error(w, "Failed to record run", http.StatusInternalServerError)
		return
	}

	go pipeline.ExecuteAggregation(h.Cfg, runID)

	writeJSON(w, map[string]interface{}{
		"message":   "Aggregation run launched",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// ListRuns lists all tracked runs
// @Summary List runs
// @Description List all dataset and aggregation runs, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} model.RunReport "Runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

// GetRun fetches one run
// @Summary Get run
// @Description Retrieve status and row counts for one run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.RunReport "Run"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := pathParam(r.URL.Path, "/api/v1/runs/", "")
	if !ok || runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, run)
}

// GetRunErrors fetches errors recorded against a run
// @Summary Get run errors
// @Description Retrieve all errors recorded during a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func (h *Handler) GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := pathParam(r.URL.Path, "/api/v1/runs/", "/errors")
	if !ok || runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	messages, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"run_id": runID,
		"errors": messages,
		"count":  len(messages),
	})
}

// GetDatasetOutput reports canonical output file metadata
// @Summary Get dataset output info
// @Description Report whether a dataset's canonical output exists and its size
// @Tags datasets
// @Produce json
// @Param name path string true "Dataset name"
// @Success 200 {object} map[string]interface{} "Output metadata"
// @Failure 404 {object} map[string]interface{} "Unknown dataset"
// @Router /datasets/{name}/output [get]
func (h *Handler) GetDatasetOutput(w http.ResponseWriter, r *http.Request) {
	name, ok := pathParam(r.URL.Path, "/api/v1/datasets/", "/output")
	if !ok || name == "" {
		http.Error(w, "Dataset name is required", http.StatusBadRequest)
		return
	}
	ds, err := pipeline.Lookup(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	outputPath := h.Output.OutputFilePath(ds.Spec.OutputPath)
	size, err := h.Output.FileSize(outputPath)
	writeJSON(w, map[string]interface{}{
		"dataset":    name,
		"path":       outputPath,
		"file_type":  h.Output.FileType(outputPath),
		"exists":     err == nil,
		"size_bytes": size,
	})
}

// pathParam extracts the variable segment between a fixed prefix and suffix.
func pathParam(path, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	param := path[len(prefix) : len(path)-len(suffix)]
	if strings.Contains(param, "/") {
		return "", false
	}
	return param, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
