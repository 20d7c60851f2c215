package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/model"
)

func recordsWithTag(tag string, n int) []model.ConversationRecord {
	out := make([]model.ConversationRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.ConversationRecord{Messages: []model.Message{
			{Role: "user", Content: fmt.Sprintf("%s-%d", tag, i)},
			{Role: "assistant", Content: "ok"},
		}})
	}
	return out
}

func TestAggregateAndSplit(t *testing.T) {
	outputPath := t.TempDir()
	if result := SaveDataset(filepath.Join(outputPath, "alpha.json"), recordsWithTag("alpha", 10)); !result.Success {
		t.Fatal(result.Error)
	}
	if result := SaveDataset(filepath.Join(outputPath, "beta.json"), recordsWithTag("beta", 5)); !result.Success {
		t.Fatal(result.Error)
	}

	cfg := config.DataConfig{
		OutputPath:  outputPath,
		DatasetName: []string{"alpha", "beta"},
		TrainSplit:  0.8,
	}

	report, err := AggregateAndSplit(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.TotalRecords != 15 {
		t.Errorf("TotalRecords = %d, want 15", report.TotalRecords)
	}
	// ceil(15 * 0.2) = 3 test rows.
	if report.TrainRecords != 12 || report.TestRecords != 3 {
		t.Errorf("split = %d/%d, want 12/3", report.TrainRecords, report.TestRecords)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", report.Skipped)
	}

	train, err := LoadDataset(report.TrainPath)
	if err != nil {
		t.Fatalf("train split unreadable: %v", err)
	}
	test, err := LoadDataset(report.TestPath)
	if err != nil {
		t.Fatalf("test split unreadable: %v", err)
	}
	if len(train) != 12 || len(test) != 3 {
		t.Errorf("written splits = %d/%d, want 12/3", len(train), len(test))
	}

	seen := make(map[string]bool)
	for _, r := range append(train, test...) {
		seen[r.Messages[0].Content] = true
	}
	if len(seen) != 15 {
		t.Errorf("splits must partition the aggregate, saw %d distinct rows", len(seen))
	}
}

func TestAggregateAndSplitIsDeterministic(t *testing.T) {
	outputPath := t.TempDir()
	if result := SaveDataset(filepath.Join(outputPath, "alpha.json"), recordsWithTag("alpha", 20)); !result.Success {
		t.Fatal(result.Error)
	}
	cfg := config.DataConfig{OutputPath: outputPath, DatasetName: []string{"alpha"}, TrainSplit: 0.9}

	if _, err := AggregateAndSplit(cfg); err != nil {
		t.Fatal(err)
	}
	first, err := LoadDataset(filepath.Join(outputPath, "train.json"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := AggregateAndSplit(cfg); err != nil {
		t.Fatal(err)
	}
	second, err := LoadDataset(filepath.Join(outputPath, "train.json"))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same input must produce an identical train split on every run")
	}
}

func TestAggregateAndSplitSkipsMissingDatasets(t *testing.T) {
	outputPath := t.TempDir()
	if result := SaveDataset(filepath.Join(outputPath, "alpha.json"), recordsWithTag("alpha", 4)); !result.Success {
		t.Fatal(result.Error)
	}
	cfg := config.DataConfig{
		OutputPath:  outputPath,
		DatasetName: []string{"alpha", "never_processed"},
		TrainSplit:  0.5,
	}

	report, err := AggregateAndSplit(cfg)
	if err != nil {
		t.Fatalf("a skippable dataset must not abort the run: %v", err)
	}
	if report.TotalRecords != 4 {
		t.Errorf("TotalRecords = %d, want 4", report.TotalRecords)
	}
	if !reflect.DeepEqual(report.Skipped, []string{"never_processed"}) {
		t.Errorf("Skipped = %v, want [never_processed]", report.Skipped)
	}
}

func TestAggregateAndSplitNothingAggregated(t *testing.T) {
	outputPath := t.TempDir()
	cfg := config.DataConfig{
		OutputPath:  outputPath,
		DatasetName: []string{"missing_one", "missing_two"},
		TrainSplit:  0.8,
	}

	report, err := AggregateAndSplit(cfg)
	if err != nil {
		t.Fatalf("empty aggregate must exit cleanly: %v", err)
	}
	if report.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", report.TotalRecords)
	}
	if _, statErr := os.Stat(filepath.Join(outputPath, "train.json")); !os.IsNotExist(statErr) {
		t.Error("no split files may be written when nothing was aggregated")
	}
}

func TestSplitRecords(t *testing.T) {
	records := recordsWithTag("r", 10)

	train, test := SplitRecords(records, 0.2)
	if len(train) != 8 || len(test) != 2 {
		t.Errorf("split = %d/%d, want 8/2", len(train), len(test))
	}

	// ceil rounds a fractional test share up.
	train, test = SplitRecords(recordsWithTag("r", 7), 0.2)
	if len(train) != 5 || len(test) != 2 {
		t.Errorf("split = %d/%d, want 5/2", len(train), len(test))
	}

	train, test = SplitRecords(nil, 0.2)
	if train != nil || test != nil {
		t.Error("empty input must yield empty splits")
	}
}
