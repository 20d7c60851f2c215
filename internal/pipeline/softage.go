package pipeline

import (
	"fmt"
	"strings"

	"go-sft-pipeline/internal/model"
)

// softageTurns is the fixed column width of the raw layout: P1..P5 prompts
// paired with R1..R5 responses.
const softageTurns = 5

// softageDroppedColumns are raw header artifacts discarded verbatim. The bare
// "]" really is a column name in the raw header and must be matched exactly.
var softageDroppedColumns = []string{"Type", "]", "Category"}

// ProcessSoftAge maps the SoftAge multi-turn tabular layout to canonical
// records: "Use case" becomes a templated system message, P<k>/R<k> are
// renamed to user_<k>/assistant_<k> and interleaved in turn order.
func ProcessSoftAge(inputPath string, sampleSize int) ([]model.ConversationRecord, int, error) {
	rows, headers, err := readCSVTable(inputPath)
	if err != nil {
		return nil, 0, err
	}

	headerSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		headerSet[h] = true
	}
	for _, dropped := range softageDroppedColumns {
		if !headerSet[dropped] {
			return nil, 0, fmt.Errorf("%w: expected column %q missing from %s", ErrMalformedInput, dropped, inputPath)
		}
	}

	mapped := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		renamed := make(model.RawRow, softageTurns*2+1)
		if useCase := strings.TrimSpace(row["Use case"]); useCase != "" {
			renamed["system"] = "You are a helpful " + useCase + "."
		}
		for turn := 1; turn <= softageTurns; turn++ {
			renamed[fmt.Sprintf("user_%d", turn)] = row[fmt.Sprintf("P%d", turn)]
			renamed[fmt.Sprintf("assistant_%d", turn)] = row[fmt.Sprintf("R%d", turn)]
		}
		mapped = append(mapped, renamed)
	}

	// Truncate after mapping.
	if sampleSize > 0 && len(mapped) > sampleSize {
		mapped = mapped[:sampleSize]
	}

	records := make([]model.ConversationRecord, 0, len(mapped))
	for _, row := range mapped {
		messages, err := Interleave(row)
		if err != nil {
			return nil, 0, err
		}
		if len(messages) == 0 {
			continue
		}
		records = append(records, model.ConversationRecord{Messages: messages})
	}

	fmt.Printf("✅ SoftAge: %d records mapped from %d raw rows\n", len(records), len(mapped))
	return records, len(mapped), nil
}
