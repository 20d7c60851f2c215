package pipeline

import (
	"fmt"

	"go-sft-pipeline/internal/model"
)

// ProcessOpenHermes maps the OpenHermes layout — a JSON array of conversation
// objects, each a list of {from, value} turns — to single-turn canonical
// records. Turns are folded into one row keyed by speaker label, then
// human/gpt are renamed to user/assistant before forming the record. This
// source carries at most one exchange per row; multi-turn interleaving does
// not apply.
func ProcessOpenHermes(inputPath string, sampleSize int) ([]model.ConversationRecord, int, error) {
	var raw []rawConversation
	if err := readJSONFile(inputPath, &raw); err != nil {
		return nil, 0, err
	}

	// Truncate to the leading sample before mapping.
	if sampleSize > 0 && len(raw) > sampleSize {
		raw = raw[:sampleSize]
	}

	var rows []model.RawRow
	for _, item := range raw {
		if len(item.Conversations) == 0 {
			continue
		}
		row := make(model.RawRow)
		for _, turn := range item.Conversations {
			if turn.From != "" {
				row[turn.From] = turn.Value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: no valid conversation data in %s", ErrMalformedInput, inputPath)
	}

	records := make([]model.ConversationRecord, 0, len(rows))
	for _, row := range rows {
		messages := singleTurnMessages(row["system"], row["human"], row["gpt"])
		if len(messages) == 0 {
			continue
		}
		records = append(records, model.ConversationRecord{Messages: messages})
	}

	fmt.Printf("✅ OpenHermes: %d records mapped from %d raw rows\n", len(records), len(raw))
	return records, len(raw), nil
}
