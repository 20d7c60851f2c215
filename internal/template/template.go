// Package template handles the chat-template descriptor consumed by the
// model/tokenizer extension step: a JSON object with per-role prefix/suffix
// pairs, optional special tokens, and the rendered chat_template string
// written into tokenizer_config.json. The pipeline adapters never apply this
// formatting to message content.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingTemplateKey marks a descriptor missing one of the required
// system_prompt/user_turn/assistant_turn keys. Always fatal.
var ErrMissingTemplateKey = errors.New("template file is missing required keys")

var requiredKeys = []string{"system_prompt", "user_turn", "assistant_turn"}

// TurnFormat is the prefix/suffix wrapping for one role.
type TurnFormat struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// ChatTemplate is the full descriptor.
type ChatTemplate struct {
	SystemPrompt  TurnFormat `json:"system_prompt"`
	UserTurn      TurnFormat `json:"user_turn"`
	AssistantTurn TurnFormat `json:"assistant_turn"`
	AddedTokens   []string   `json:"added_tokens,omitempty"`
	BOSToken      string     `json:"bos_token,omitempty"`
	EOSToken      string     `json:"eos_token,omitempty"`
}

// Load reads and validates a descriptor file. All three turn keys must be
// present; their absence is fatal for the caller.
func Load(path string) (*ChatTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template file not found at %s", path)
		}
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("could not decode JSON from %s: %w", path, err)
	}
	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingTemplateKey, key)
		}
	}

	var tmpl ChatTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("could not decode JSON from %s: %w", path, err)
	}
	return &tmpl, nil
}

// RenderJinja converts the descriptor into the Jinja2 chat-template string
// stored in tokenizer_config.json.
func (t *ChatTemplate) RenderJinja() string {
	var b strings.Builder

	b.WriteString("{%- for message in messages %}\n")
	b.WriteString("    {%- if message['role'] == 'system' %}\n")
	fmt.Fprintf(&b, "%s{{ message['content'] }}%s\n", t.SystemPrompt.Prefix, t.SystemPrompt.Suffix)
	b.WriteString("    {%- elif message['role'] == 'user' %}\n")
	fmt.Fprintf(&b, "%s{{ message['content'] }}%s\n", t.UserTurn.Prefix, t.UserTurn.Suffix)
	b.WriteString("    {%- elif message['role'] == 'assistant' %}\n")
	fmt.Fprintf(&b, "%s{{ message['content'] }}%s\n", t.AssistantTurn.Prefix, t.AssistantTurn.Suffix)
	b.WriteString("    {%- endif %}\n")
	b.WriteString("{%- endfor %}\n")
	b.WriteString("{%- if add_generation_prompt %}\n")
	fmt.Fprintf(&b, "%s\n", t.AssistantTurn.Prefix)
	b.WriteString("{%- endif %}")

	return strings.TrimSpace(b.String())
}

// UpdateTokenizerConfig merges the rendered chat template and special tokens
// into targetDir/tokenizer_config.json. A missing config starts from empty;
// bos/eos are only overridden when set in the descriptor.
func UpdateTokenizerConfig(targetDir string, t *ChatTemplate) error {
	configPath := filepath.Join(targetDir, "tokenizer_config.json")

	tokenizerConfig := map[string]interface{}{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, &tokenizerConfig); err != nil {
			return fmt.Errorf("could not decode existing tokenizer config: %w", err)
		}
	}

	tokenizerConfig["chat_template"] = t.RenderJinja()
	if t.BOSToken != "" {
		tokenizerConfig["bos_token"] = t.BOSToken
	}
	if t.EOSToken != "" {
		tokenizerConfig["eos_token"] = t.EOSToken
	}
	if len(t.AddedTokens) > 0 {
		tokenizerConfig["additional_special_tokens"] = t.AddedTokens
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	out, err := json.MarshalIndent(tokenizerConfig, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write tokenizer config: %w", err)
	}

	fmt.Printf("💾 Updated %s with chat template and special tokens\n", configPath)
	return nil
}
