package ai

import (
	"context"
	"time"
)

// Provider is implemented by every transport for the gateway contract.
type Provider interface {
	// SendMessage validates and sends a chat request and returns the reply.
	// Errors are one of the kinds in errors.go.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// ListModels returns the model identifiers currently offered by the
	// gateway. A non-positive timeout means DefaultListModelsTimeout.
	ListModels(ctx context.Context, timeout time.Duration) ([]string, error)
}
