package pipeline

import (
	"bytes"
	"encoding/json"
	"strings"

	"go-sft-pipeline/internal/model"
)

// nameLookahead is the window checked after an opening brace for the literal
// `"name"` substring. The gate is a heuristic, not a grammar check: it cheaply
// rejects braces that clearly do not open a function descriptor.
const nameLookahead = 20

// ExtractFunctionSpecs scans free text for JSON object literals that describe
// callable tools and returns the successfully parsed ones in source order.
// The scan never fails: malformed candidates are dropped and scanning
// resumes, so one bad fragment cannot suppress its siblings.
//
// The scanner tracks brace depth only; it has no notion of quoted strings, so
// a brace character inside a string value corrupts depth tracking for that
// candidate. Known limitation, kept for behavioral compatibility.
func ExtractFunctionSpecs(text string) []model.FunctionSpec {
	specs := []model.FunctionSpec{}

	inCandidate := false
	depth := 0
	var block []byte

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if !inCandidate {
			if ch == '{' {
				end := i + nameLookahead
				if end > len(text) {
					end = len(text)
				}
				if strings.Contains(text[i:end], `"name"`) {
					inCandidate = true
					depth = 1
					block = append(block[:0], ch)
				}
			}
			continue
		}

		block = append(block, ch)
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if spec, ok := parseCandidate(block); ok {
					specs = append(specs, spec)
				}
				inCandidate = false
				block = block[:0]
			}
		}
	}

	return specs
}

// parseCandidate parses one accumulated brace-balanced span. The span is kept
// only if it decodes as a JSON object carrying both "name" and "description".
func parseCandidate(block []byte) (model.FunctionSpec, bool) {
	cleaned := strings.TrimRight(strings.TrimSpace(string(block)), ",")

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return model.FunctionSpec{}, false
	}

	nameRaw, hasName := fields["name"]
	descRaw, hasDesc := fields["description"]
	if !hasName || !hasDesc {
		return model.FunctionSpec{}, false
	}

	var spec model.FunctionSpec
	if err := json.Unmarshal(nameRaw, &spec.Name); err != nil {
		return model.FunctionSpec{}, false
	}
	if err := json.Unmarshal(descRaw, &spec.Description); err != nil {
		return model.FunctionSpec{}, false
	}
	// Compact so the stored bytes do not depend on source whitespace:
	// extracting a re-serialized spec yields the identical value.
	if params, ok := fields["parameters"]; ok {
		var compacted bytes.Buffer
		if err := json.Compact(&compacted, params); err != nil {
			return model.FunctionSpec{}, false
		}
		spec.Parameters = compacted.Bytes()
	}

	return spec, true
}
