package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skilledu/skilledu-go/providers/ai"
	"github.com/skilledu/skilledu-go/providers/observability"
)

// Client is an immutable orchestration wrapper around an ai.Provider. Both
// chains are built once by New, so a Client is safe for concurrent use.
type Client struct {
	provider     ai.Provider
	observer     observability.Provider
	defaultModel string
	middlewares  []MiddlewareConfig

	send   SendFunc
	models ModelsFunc
}

// Option configures a Client.
type Option func(*Client)

// WithObserver enables the observability middleware as the outermost wrapper.
// A nil observer keeps observability disabled.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithDefaultModel sets the model used when a request leaves Model empty.
// An empty value lets the gateway choose.
func WithDefaultModel(model string) Option {
	return func(c *Client) {
		c.defaultModel = model
	}
}

// WithMiddleware appends middlewares to the chain. They execute in the order
// given, outermost first.
func WithMiddleware(middlewares ...MiddlewareConfig) Option {
	return func(c *Client) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// New builds a Client over provider.
func New(provider ai.Provider, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, errors.New("provider is required")
	}

	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}

	for i, mw := range c.middlewares {
		if mw.Send == nil {
			return nil, fmt.Errorf("middleware at index %d has a nil Send function", i)
		}
	}

	middlewares := c.middlewares
	if c.observer != nil {
		middlewares = append([]MiddlewareConfig{NewObservabilityMiddleware(c.observer)}, middlewares...)
	}

	c.send = buildSendChain(provider, middlewares)
	c.models = buildModelsChain(provider, middlewares)
	return c, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// SendMessage runs request through the middleware chain.
func (c *Client) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if request.Model == "" {
		request.Model = c.defaultModel
	}
	return c.send(ctx, request)
}

// Chat is SendMessage returning only the reply text.
func (c *Client) Chat(ctx context.Context, request ai.ChatRequest) (string, error) {
	response, err := c.SendMessage(ctx, request)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}

// ListModels runs a list-models call through the middleware chain.
func (c *Client) ListModels(ctx context.Context, timeout time.Duration) ([]string, error) {
	return c.models(ctx, timeout)
}
