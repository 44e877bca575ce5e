package gateway

import (
	"net/http"

	"github.com/skilledu/skilledu-go/providers/observability"
)

// Option configures a Client at construction.
type Option func(*Client)

// WithHttpClient sets the HTTP client used for every call. A nil client is
// ignored. Per-call deadlines are applied through the request context, so the
// client's own Timeout is an additional upper bound.
func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithObserver enables tracing, metrics and logging for every call.
// Without it the client falls back to the observer carried by the call's
// context, if any.
func WithObserver(observer observability.Provider) Option {
	return func(c *Client) {
		c.observer = observer
	}
}
