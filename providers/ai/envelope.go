package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DecodeEnvelope parses a 2xx response body into a JSON object. An empty body
// decodes to an empty object. Anything that is not a JSON object yields
// ErrProtocol.
func DecodeEnvelope(body []byte) (map[string]any, error) {
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected JSON object, got %s", ErrProtocol, jsonKind(decoded))
	}
	return object, nil
}

// DecodeChatEnvelope interprets a chat response body and returns the reply
// text. A missing or null "response" yields "".
func DecodeChatEnvelope(body []byte) (string, error) {
	envelope, err := decodeSuccessful(body)
	if err != nil {
		return "", err
	}

	response, ok := envelope["response"]
	if !ok || response == nil {
		return "", nil
	}
	return Stringify(response), nil
}

// DecodeModelsEnvelope interprets a list-models response body. A missing or
// non-array "models" field yields an empty list; every element is
// stringified.
func DecodeModelsEnvelope(body []byte) ([]string, error) {
	envelope, err := decodeSuccessful(body)
	if err != nil {
		return nil, err
	}

	raw, ok := envelope["models"].([]any)
	if !ok {
		return []string{}, nil
	}

	models := make([]string, 0, len(raw))
	for _, m := range raw {
		models = append(models, Stringify(m))
	}
	return models, nil
}

func decodeSuccessful(body []byte) (map[string]any, error) {
	envelope, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	if !truthy(envelope["success"]) {
		message := DefaultRequestErrorMessage
		if e := envelope["error"]; truthy(e) {
			message = Stringify(e)
		}
		return nil, &RequestError{Message: message}
	}
	return envelope, nil
}

// truthy follows the loose truthiness the gateway's PHP and JavaScript
// clients apply to envelope flags: null, false, 0, NaN and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// Stringify renders a decoded JSON value as text: strings verbatim, numbers
// in their shortest decimal form, booleans as true/false, null as "null", and
// arrays or objects as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return string(bytes.TrimRight(buf.Bytes(), "\n"))
	}
}

func formatNumber(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
