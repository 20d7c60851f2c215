package pipeline

import (
	"path/filepath"
	"testing"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/store"
)

func runTestConfig(t *testing.T) *config.Config {
	t.Helper()
	if err := store.InitDB(filepath.Join(t.TempDir(), "runs.db")); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return &config.Config{Source: config.SourceConfig{
		Data: config.DataConfig{
			InputPath:   t.TempDir(),
			OutputPath:  t.TempDir(),
			DatasetName: []string{"toolace"},
			TrainSplit:  0.8,
		},
	}}
}

func TestExecuteRun(t *testing.T) {
	cfg := runTestConfig(t)

	rawPath := filepath.Join(cfg.Source.Data.InputPath, "Team-ACE_ToolACE", "data.json")
	writeFile(t, rawPath, `[
		{"system": "plain prompt", "conversations": [
			{"from": "user", "value": "hi"},
			{"from": "assistant", "value": "hello"}
		]}
	]`)

	if err := store.CreateRun("run-ok", "toolace"); err != nil {
		t.Fatal(err)
	}
	if err := ExecuteRun(cfg, "toolace", "run-ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := store.GetRun("run-ok")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != "completed" || run.RowsIn != 1 || run.RowsOut != 1 {
		t.Errorf("run = %+v, want completed 1/1", run)
	}

	records, err := LoadDataset(filepath.Join(cfg.Source.Data.OutputPath, "toolace.json"))
	if err != nil {
		t.Fatalf("canonical output unreadable: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d canonical records, want 1", len(records))
	}
}

func TestExecuteRunRecordsFailure(t *testing.T) {
	cfg := runTestConfig(t)

	if err := store.CreateRun("run-bad", "toolace"); err != nil {
		t.Fatal(err)
	}
	// No raw input written, so the adapter must fail.
	if err := ExecuteRun(cfg, "toolace", "run-bad"); err == nil {
		t.Fatal("expected an error for missing raw input")
	}

	run, err := store.GetRun("run-bad")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != "failed" {
		t.Errorf("status = %q, want failed", run.Status)
	}
	messages, err := store.GetRunErrors("run-bad")
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) == 0 {
		t.Error("the failure must be recorded against the run")
	}
}

func TestExecuteRunUnknownDataset(t *testing.T) {
	cfg := runTestConfig(t)

	if err := store.CreateRun("run-unknown", "nope"); err != nil {
		t.Fatal(err)
	}
	if err := ExecuteRun(cfg, "nope", "run-unknown"); err == nil {
		t.Fatal("expected an error for an unregistered dataset")
	}

	run, err := store.GetRun("run-unknown")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != "failed" {
		t.Errorf("status = %q, want failed", run.Status)
	}
}

func TestExecuteAggregation(t *testing.T) {
	cfg := runTestConfig(t)

	canonical := filepath.Join(cfg.Source.Data.OutputPath, "toolace.json")
	if result := SaveDataset(canonical, recordsWithTag("toolace", 10)); !result.Success {
		t.Fatal(result.Error)
	}

	if err := store.CreateRun("run-agg", AggregateRunName); err != nil {
		t.Fatal(err)
	}
	if err := ExecuteAggregation(cfg, "run-agg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run, err := store.GetRun("run-agg")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != "completed" || run.RowsIn != 10 || run.RowsOut != 10 {
		t.Errorf("run = %+v, want completed 10/10", run)
	}
}
