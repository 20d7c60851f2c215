package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"go-sft-pipeline/internal/model"
)

// Interleave turns a row exposing an optional "system" field and numbered
// user_<k>/assistant_<k> fields into an ordered message sequence. A non-empty
// system field always comes first; turns follow in strictly increasing
// numeric order (user_10 after user_9, not lexicographic), user before
// assistant within a turn, each side independently optional. A row producing
// zero messages yields an empty slice — the caller drops it.
func Interleave(row model.RawRow) ([]model.Message, error) {
	var messages []model.Message

	if content := strings.TrimSpace(row["system"]); content != "" {
		messages = append(messages, model.Message{Role: "system", Content: content})
	}

	maxTurn := 0
	for column := range row {
		suffix, ok := turnSuffix(column)
		if !ok {
			continue
		}
		turn, err := strconv.Atoi(suffix)
		if err != nil {
			return nil, fmt.Errorf("non-numeric turn suffix in column %q: %w", column, err)
		}
		if turn > maxTurn {
			maxTurn = turn
		}
	}

	for turn := 1; turn <= maxTurn; turn++ {
		if content := strings.TrimSpace(row[fmt.Sprintf("user_%d", turn)]); content != "" {
			messages = append(messages, model.Message{Role: "user", Content: content})
		}
		if content := strings.TrimSpace(row[fmt.Sprintf("assistant_%d", turn)]); content != "" {
			messages = append(messages, model.Message{Role: "assistant", Content: content})
		}
	}

	return messages, nil
}

// turnSuffix returns the part after user_/assistant_ for turn columns.
func turnSuffix(column string) (string, bool) {
	if rest, ok := strings.CutPrefix(column, "user_"); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(column, "assistant_"); ok {
		return rest, true
	}
	return "", false
}

// singleTurnMessages forms the fixed system/user/assistant ordering used by
// single-turn sources. Empty or whitespace-only fields are omitted rather
// than kept as empty messages.
func singleTurnMessages(system, user, assistant string) []model.Message {
	var messages []model.Message
	if content := strings.TrimSpace(system); content != "" {
		messages = append(messages, model.Message{Role: "system", Content: content})
	}
	if content := strings.TrimSpace(user); content != "" {
		messages = append(messages, model.Message{Role: "user", Content: content})
	}
	if content := strings.TrimSpace(assistant); content != "" {
		messages = append(messages, model.Message{Role: "assistant", Content: content})
	}
	return messages
}
