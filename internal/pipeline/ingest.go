package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go-sft-pipeline/internal/model"
	"go-sft-pipeline/pkg/utils"
)

// ------------------- Raw ingestion -------------------

// rawTurn is one {from, value} entry in a raw conversation list.
type rawTurn struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// rawConversation is one element of the JSON-array layouts (OpenHermes,
// ToolACE). System is only populated by ToolACE.
type rawConversation struct {
	System        string    `json:"system"`
	Conversations []rawTurn `json:"conversations"`
}

// readJSONFile decodes a whole JSON file into v. A missing file maps to
// ErrMissingInput, a decode failure to ErrMalformedInput; both are fatal for
// the adapter run.
func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: could not decode JSON from %s: %v", ErrMalformedInput, path, err)
	}
	return nil
}

// readCSVTable loads a columnar tabular file into raw rows keyed by cleaned
// header names. Headers are trimmed and stripped of quote characters; cell
// values are kept verbatim.
func readCSVTable(path string) ([]model.RawRow, []string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	csvReader := csv.NewReader(file)
	csvReader.LazyQuotes = true

	rawHeaders, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read CSV header from %s: %v", ErrMalformedInput, path, err)
	}

	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = utils.CleanHeader(h)
	}

	var rows []model.RawRow
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: CSV read error in %s: %v", ErrMalformedInput, path, err)
		}

		row := make(model.RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}

	fmt.Printf("📄 CSV ingestion done: %d records read from %s\n", len(rows), path)
	return rows, headers, nil
}
