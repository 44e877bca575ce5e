package utils

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxStringLength is the truncation length used when a caller passes a
// non-positive limit to [TruncateString].
const DefaultMaxStringLength = 500

// ToJSON returns the compact JSON encoding of v, or a JSON error object if v
// cannot be marshaled. The result is always safe to put in a log line.
func ToJSON(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return `{"error": "failed to marshal to JSON: ` + err.Error() + `"}`
	}
	return string(encoded)
}

// TruncateString shortens s to at most maxLen bytes and records the original
// length in a suffix. A non-positive maxLen means [DefaultMaxStringLength].
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
