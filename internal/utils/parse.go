package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs decodes content as JSON into a value of type T. When strict
// decoding fails the input is run through jsonrepair (single quotes, unquoted
// keys, trailing commas, missing brackets) and decoded again. Hand-typed JSON
// on a command line is the main source of such input.
//
//	msgs, err := ParseStringAs[[]ai.Message](`[{role: 'user', content: 'hi'}]`)
func ParseStringAs[T any](content string) (T, error) {
	var result T

	content = strings.TrimSpace(content)
	if content == "" {
		return result, fmt.Errorf("failed to parse empty content as %T", result)
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	var retry T
	if err = json.Unmarshal([]byte(repaired), &retry); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
	}
	return retry, nil
}
