package middleware

import (
	"context"
	"time"

	"github.com/skilledu/skilledu-go/core/client"
	"github.com/skilledu/skilledu-go/providers/ai"
)

// NewTimeoutMiddleware creates a MiddlewareConfig that enforces a deadline on
// both chat and list-models calls. If the caller's context already has a
// shorter deadline, that deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) client.MiddlewareConfig {
	return client.MiddlewareConfig{
		Send:   buildSendTimeout(timeout),
		Models: buildModelsTimeout(timeout),
	}
}

func buildSendTimeout(timeout time.Duration) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}

func buildModelsTimeout(timeout time.Duration) client.ModelsMiddleware {
	return func(next client.ModelsFunc) client.ModelsFunc {
		return func(ctx context.Context, callTimeout time.Duration) ([]string, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, callTimeout)
		}
	}
}
