package utils

import "strings"

// CleanHeader normalizes a raw tabular column name: trims whitespace and
// removes ALL quote characters left over by sloppy exporters.
func CleanHeader(h string) string {
	cleaned := strings.TrimSpace(h)
	return strings.ReplaceAll(cleaned, `"`, "")
}
