package ai

import "time"

/*
	##### PROVIDER INPUT #####
*/

// MessageRole is the author of a structured message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// IsValid reports whether r is one of the roles the gateway accepts.
func (r MessageRole) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one entry of a structured conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// ChatRequest is the caller-facing input of a chat call. It accepts three
// shapes: a single Message, any of the System/User/Assistant role fields, or
// a structured Messages list. When Messages is non-empty it wins and the flat
// fields are not sent.
type ChatRequest struct {
	Message string

	System    string
	User      string
	Assistant string

	Messages []Message

	Model       string
	Temperature *float64 // nil means DefaultTemperature
	MaxTokens   *int     // nil means DefaultMaxTokens

	// Timeout bounds the whole HTTP exchange. Zero or negative means DefaultChatTimeout.
	Timeout time.Duration
}

// Shape names the input form that will be sent: "messages", "roles" or
// "message". It returns "" when the request has no usable content.
func (r ChatRequest) Shape() string {
	switch {
	case len(r.Messages) > 0:
		return "messages"
	case r.System != "" || r.User != "" || r.Assistant != "":
		return "roles"
	case r.Message != "":
		return "message"
	default:
		return ""
	}
}

/*
	##### PROVIDER OUTPUT #####
*/

// ChatResponse is the result of a successful chat call.
type ChatResponse struct {
	Content string `json:"content"`
	// Model is the model that was requested; empty means the gateway default.
	Model string `json:"model,omitempty"`
}
