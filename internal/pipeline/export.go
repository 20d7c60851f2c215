package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-sft-pipeline/internal/model"
)

// ExportResult reports the outcome of one save operation. Save failures are
// reported here rather than raised; callers must check Success.
type ExportResult struct {
	Type        string    `json:"type"` // "json", "csv"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// SaveDataset writes canonical records to path, overwriting any previous file
// wholesale and creating missing parent directories. The format switches on
// the file extension: .csv gets a two-column tabular layout, everything else
// is written as a JSON array.
func SaveDataset(path string, records []model.ConversationRecord) ExportResult {
	result := ExportResult{
		Path:       path,
		ExportedAt: time.Now().UTC(),
	}

	var count int
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		result.Type = "csv"
		count, err = saveCSV(path, records)
	default:
		result.Type = "json"
		count, err = saveJSON(path, records)
	}

	result.RecordCount = count
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("❌ Export to %s failed: %v\n", path, err)
	} else {
		fmt.Printf("💾 Export successful: %d records written to %s\n", count, path)
	}
	return result
}

// LoadDataset reads an already-canonicalized dataset back from a JSON file.
func LoadDataset(path string) ([]model.ConversationRecord, error) {
	var records []model.ConversationRecord
	if err := readJSONFile(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func saveJSON(path string, records []model.ConversationRecord) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return len(records), nil
}

// saveCSV writes the canonical columnar layout: a messages column holding the
// JSON-encoded message sequence, and the tool column when present.
func saveCSV(path string, records []model.ConversationRecord) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"messages", "tool"}); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, record := range records {
		messagesJSON, err := json.Marshal(record.Messages)
		if err != nil {
			return count, fmt.Errorf("failed to encode messages: %w", err)
		}
		if err := writer.Write([]string{string(messagesJSON), record.Tool}); err != nil {
			return count, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}
	return count, nil
}
