package model

import "encoding/json"

// Message is a single conversation turn in the canonical schema.
// Role is free-form: the standard three (system/user/assistant) for most
// sources, but tool-calling corpora may carry additional labels.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationRecord is the canonical training unit every adapter converges
// on: an ordered message sequence plus an optional JSON-encoded array of
// function specs in Tool.
type ConversationRecord struct {
	Messages []Message `json:"messages"`
	Tool     string    `json:"tool,omitempty"`
}

// FunctionSpec describes one callable tool recovered from free text.
// Parameters is kept raw: its shape is tool-specific and never interpreted.
type FunctionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// RawRow is a schema-agnostic row from any raw source. Rows are transient:
// consumed once by exactly one adapter, never persisted.
type RawRow map[string]string

// DatasetSpec is one registry entry the orchestrator and CLI operate on.
// InputPath and OutputPath are relative to the configured data roots.
type DatasetSpec struct {
	Name       string `json:"name"`
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	SampleSize int    `json:"sample_size"`
}
