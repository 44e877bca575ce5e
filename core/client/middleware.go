package client

import (
	"context"
	"time"

	"github.com/skilledu/skilledu-go/providers/ai"
)

// SendFunc sends a chat request to the provider and returns the completed
// response. It is the base unit threaded through the send middleware chain.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// ModelsFunc lists the models offered by the provider. It is the base unit
// threaded through the models middleware chain.
type ModelsFunc func(ctx context.Context, timeout time.Duration) ([]string, error)

// Middleware intercepts chat requests and responses. Each Middleware receives
// the next SendFunc in the chain and returns a new SendFunc that wraps it.
// Middlewares are applied outermost-first: the first middleware in the slice
// is the outermost wrapper.
type Middleware func(next SendFunc) SendFunc

// ModelsMiddleware is the list-models counterpart of Middleware.
type ModelsMiddleware func(next ModelsFunc) ModelsFunc

// MiddlewareConfig pairs a send middleware with its optional list-models
// counterpart. Send is required; a nil Send causes [New] to return an error.
// A nil Models means ListModels calls bypass this entry.
type MiddlewareConfig struct {
	Send   Middleware
	Models ModelsMiddleware
}

// buildSendChain constructs the send chain. The base function calls the
// provider directly. Middlewares are applied in reverse order so that the
// first entry in the slice becomes the outermost wrapper.
func buildSendChain(provider ai.Provider, middlewares []MiddlewareConfig) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i].Send(chain)
	}

	return chain
}

// buildModelsChain constructs the list-models chain, skipping entries with a
// nil Models field.
func buildModelsChain(provider ai.Provider, middlewares []MiddlewareConfig) ModelsFunc {
	var chain ModelsFunc = func(ctx context.Context, timeout time.Duration) ([]string, error) {
		return provider.ListModels(ctx, timeout)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i].Models != nil {
			chain = middlewares[i].Models(chain)
		}
	}

	return chain
}
