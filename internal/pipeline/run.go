package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/store"
)

// AggregateRunName is the pseudo-dataset name aggregation runs are tracked
// under in the run store.
const AggregateRunName = "aggregate_and_split"

// RunDataset executes one adapter end to end: load raw input, map to
// canonical records, save. The run is tracked in the store under a fresh ID.
func RunDataset(cfg *config.Config, name string) error {
	runID := uuid.New().String()
	store.CreateRun(runID, name)
	return ExecuteRun(cfg, name, runID)
}

// ExecuteRun runs a registered adapter under an existing run ID. Adapter
// errors are recorded against the run and propagated; save failures are
// recorded and reported but not raised.
func ExecuteRun(cfg *config.Config, name string, runID string) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting processing for dataset %s (run %s)\n", name, runID)

	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
			fmt.Printf("❌ Processing failed for dataset %s: %v\n", name, err)
		}
	}()

	ds, err := Lookup(name)
	if err != nil {
		return err
	}

	store.UpdateRunStatus(runID, "running")

	inputPath := filepath.Join(cfg.Source.Data.InputPath, ds.Spec.InputPath)
	records, rowsIn, err := ds.Process(inputPath, ds.Spec.SampleSize)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(cfg.Source.Data.OutputPath, ds.Spec.OutputPath)
	result := SaveDataset(outputPath, records)
	if !result.Success {
		store.UpdateRunStatus(runID, "failed")
		store.SaveRunError(runID, fmt.Errorf("save failed: %s", result.Error))
		return nil
	}

	store.FinishRun(runID, rowsIn, len(records), outputPath)
	fmt.Printf("🏁 Dataset %s completed in %v: %d raw rows -> %d records\n",
		name, time.Since(start).Round(time.Millisecond), rowsIn, len(records))
	return nil
}

// RunAggregation executes the aggregation-and-split orchestrator with run
// tracking.
func RunAggregation(cfg *config.Config) error {
	runID := uuid.New().String()
	store.CreateRun(runID, AggregateRunName)
	return ExecuteAggregation(cfg, runID)
}

// ExecuteAggregation runs aggregation under an existing run ID.
func ExecuteAggregation(cfg *config.Config, runID string) (err error) {
	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	store.UpdateRunStatus(runID, "running")

	report, err := AggregateAndSplit(cfg.Source.Data)
	if err != nil {
		return err
	}

	store.FinishRun(runID, report.TotalRecords, report.TrainRecords+report.TestRecords, report.TrainPath)
	return nil
}
