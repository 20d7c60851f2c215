package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-sft-pipeline/internal/model"
)

// ProcessToolACE maps the ToolACE layout: each row has a free-text system
// field that may embed tool descriptors, plus a conversations list. The
// descriptors are recovered with ExtractFunctionSpecs and serialized into the
// record's tool field (an empty-array string when none were found). Turns map
// directly to messages — the from label is kept as-is, including role labels
// beyond the standard three.
func ProcessToolACE(inputPath string, sampleSize int) ([]model.ConversationRecord, int, error) {
	var raw []rawConversation
	if err := readJSONFile(inputPath, &raw); err != nil {
		return nil, 0, err
	}

	if sampleSize > 0 && len(raw) > sampleSize {
		raw = raw[:sampleSize]
	}

	records := make([]model.ConversationRecord, 0, len(raw))
	for _, item := range raw {
		specs := ExtractFunctionSpecs(item.System)
		toolJSON, err := json.Marshal(specs)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to serialize function specs: %w", err)
		}

		var messages []model.Message
		for _, turn := range item.Conversations {
			content := strings.TrimSpace(turn.Value)
			if content == "" {
				continue
			}
			messages = append(messages, model.Message{Role: turn.From, Content: content})
		}
		if len(messages) == 0 {
			continue
		}

		records = append(records, model.ConversationRecord{
			Messages: messages,
			Tool:     string(toolJSON),
		})
	}

	fmt.Printf("✅ ToolACE: %d records mapped from %d raw rows\n", len(records), len(raw))
	return records, len(raw), nil
}
