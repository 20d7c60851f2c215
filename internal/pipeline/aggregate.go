package pipeline

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"path/filepath"

	"go-sft-pipeline/internal/config"
	"go-sft-pipeline/internal/model"
)

// splitSeed fixes the shuffle so the train/test split is reproducible across
// runs on the same aggregate.
const splitSeed = 42

// AggregateReport summarizes one aggregation-and-split run.
type AggregateReport struct {
	TotalRecords int      `json:"total_records"`
	TrainRecords int      `json:"train_records"`
	TestRecords  int      `json:"test_records"`
	TrainPath    string   `json:"train_path"`
	TestPath     string   `json:"test_path"`
	Skipped      []string `json:"skipped,omitempty"`
}

// AggregateAndSplit loads every already-canonicalized dataset named in the
// configuration, concatenates them in listed order (no deduplication) and
// writes a randomized train/test split. A missing or unreadable dataset is
// logged and skipped; only the "nothing aggregated" case aborts, cleanly and
// with no output written.
func AggregateAndSplit(cfg config.DataConfig) (*AggregateReport, error) {
	fmt.Println("--- Starting Dataset Aggregation ---")

	report := &AggregateReport{}
	var aggregated []model.ConversationRecord

	for _, name := range cfg.DatasetName {
		datasetPath := filepath.Join(cfg.OutputPath, name+".json")

		records, err := LoadDataset(datasetPath)
		if errors.Is(err, ErrMissingInput) {
			fmt.Printf("⚠️ Dataset not found at %s. Skipping.\n", datasetPath)
			report.Skipped = append(report.Skipped, name)
			continue
		}
		if err != nil {
			fmt.Printf("❌ Error reading %s: %v\n", datasetPath, err)
			report.Skipped = append(report.Skipped, name)
			continue
		}

		aggregated = append(aggregated, records...)
		fmt.Printf("✅ Aggregated %s (%d records)\n", name, len(records))
	}

	if len(aggregated) == 0 {
		fmt.Println("No data was aggregated. Exiting.")
		return report, nil
	}

	report.TotalRecords = len(aggregated)
	fmt.Printf("--- Total records aggregated: %d ---\n", len(aggregated))

	testFraction := 1 - cfg.TrainSplit
	fmt.Printf("--- Splitting data into training and testing sets (test_size=%g) ---\n", testFraction)

	train, test := SplitRecords(aggregated, testFraction)
	report.TrainRecords = len(train)
	report.TestRecords = len(test)
	fmt.Printf("📊 Training set size: %d\n", len(train))
	fmt.Printf("📊 Testing set size: %d\n", len(test))

	report.TrainPath = filepath.Join(cfg.OutputPath, "train.json")
	report.TestPath = filepath.Join(cfg.OutputPath, "test.json")

	if result := SaveDataset(report.TrainPath, train); !result.Success {
		fmt.Printf("❌ Error saving training split: %s\n", result.Error)
	}
	if result := SaveDataset(report.TestPath, test); !result.Success {
		fmt.Printf("❌ Error saving testing split: %s\n", result.Error)
	}

	return report, nil
}

// SplitRecords shuffles records with the fixed seed and splits off
// ceil(n * testFraction) rows as the test set. Identical input yields an
// identical split on every run.
func SplitRecords(records []model.ConversationRecord, testFraction float64) (train, test []model.ConversationRecord) {
	n := len(records)
	if n == 0 {
		return nil, nil
	}

	testCount := int(math.Ceil(float64(n) * testFraction))
	if testCount > n {
		testCount = n
	}
	if testCount < 0 {
		testCount = 0
	}

	rng := rand.New(rand.NewSource(splitSeed))
	order := rng.Perm(n)

	test = make([]model.ConversationRecord, 0, testCount)
	train = make([]model.ConversationRecord, 0, n-testCount)
	for i, idx := range order {
		if i < testCount {
			test = append(test, records[idx])
		} else {
			train = append(train, records[idx])
		}
	}
	return train, test
}
