package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go-sft-pipeline/internal/model"
)

// tuluShardCount is the fixed, known shard layout of the raw mixture.
const tuluShardCount = 6

// ProcessTulu handles the pre-structured mixture: every row already carries a
// ready-made ordered role/content sequence, so the adapter only concatenates
// the shard files, truncates to the sample size and copies messages through
// unchanged. Any missing shard is fatal.
func ProcessTulu(inputDir string, sampleSize int) ([]model.ConversationRecord, int, error) {
	if _, err := os.Stat(inputDir); err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingInput, inputDir)
	}

	var rows []model.ConversationRecord
	for seq := 0; seq < tuluShardCount; seq++ {
		shardPath := filepath.Join(inputDir, fmt.Sprintf("train-0000%d-of-0000%d.json", seq, tuluShardCount))
		var shard []model.ConversationRecord
		if err := readJSONFile(shardPath, &shard); err != nil {
			return nil, 0, err
		}
		rows = append(rows, shard...)
	}

	if sampleSize > 0 && len(rows) > sampleSize {
		rows = rows[:sampleSize]
	}

	records := make([]model.ConversationRecord, 0, len(rows))
	for _, row := range rows {
		if len(row.Messages) == 0 {
			continue
		}
		records = append(records, model.ConversationRecord{Messages: row.Messages})
	}

	fmt.Printf("✅ Tulu: %d records copied through from %d shard rows\n", len(records), len(rows))
	return records, len(rows), nil
}
