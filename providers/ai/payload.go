package ai

import (
	"fmt"
	"time"
)

const (
	DefaultTemperature       = 0.7
	DefaultMaxTokens         = 1000
	DefaultChatTimeout       = 60 * time.Second
	DefaultListModelsTimeout = 30 * time.Second
)

// ChatPayload is the JSON body POSTed to the gateway. Field order matches the
// order in which fields are written: sampling options, model, then either the
// structured messages or the flat fields.
type ChatPayload struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Model       string  `json:"model,omitempty"`

	Messages []Message `json:"messages,omitempty"`

	System    string `json:"system,omitempty"`
	User      string `json:"user,omitempty"`
	Assistant string `json:"assistant,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ValidateChatRequest checks that request carries at least one usable input
// form. No exclusivity between forms is enforced.
func ValidateChatRequest(request ChatRequest) error {
	if request.Shape() == "" {
		return fmt.Errorf("%w: Provide message, or system/user/assistant, or messages[]", ErrInvalidArgument)
	}
	return nil
}

// BuildChatPayload validates request and converts it to the wire payload.
//
// A non-empty Messages list is copied verbatim and suppresses Message, System,
// User and Assistant even when they are also set. Otherwise every non-empty
// flat field is included.
func BuildChatPayload(request ChatRequest) (ChatPayload, error) {
	if err := ValidateChatRequest(request); err != nil {
		return ChatPayload{}, err
	}

	payload := ChatPayload{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Model:       request.Model,
	}
	if request.Temperature != nil {
		payload.Temperature = *request.Temperature
	}
	if request.MaxTokens != nil {
		payload.MaxTokens = *request.MaxTokens
	}

	if len(request.Messages) > 0 {
		payload.Messages = append([]Message(nil), request.Messages...)
		return payload, nil
	}

	payload.System = request.System
	payload.User = request.User
	payload.Assistant = request.Assistant
	payload.Message = request.Message
	return payload, nil
}

// EffectiveTimeout returns timeout, or fallback when timeout is not positive.
func EffectiveTimeout(timeout, fallback time.Duration) time.Duration {
	if timeout <= 0 {
		return fallback
	}
	return timeout
}
