package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/skilledu/skilledu-go/providers/observability"
)

// HeaderOption is an extra header set on an outgoing request.
type HeaderOption struct {
	Key   string
	Value string
}

// DoGetSync performs a synchronous HTTP GET request and returns the response
// together with its fully read body. The status code is not interpreted: the
// caller decides what a non-2xx response means for its protocol.
func DoGetSync(ctx context.Context, client *http.Client, url string, headers ...HeaderOption) (*http.Response, []byte, error) {
	return doSync(ctx, client, http.MethodGet, url, nil, headers)
}

// DoPostSync performs a synchronous HTTP POST request with a JSON-encoded body
// and returns the response together with its fully read body.
//
// Error Handling Strategy:
//   - Marshal and request construction errors are returned before any I/O
//   - Transport errors (including context deadline and cancellation) are
//     returned wrapped, so errors.Is(err, context.DeadlineExceeded) still works
//   - Response body close errors are logged but never override the result
//
// The request is bound to ctx, so cancelling ctx aborts the connection attempt
// and any in-flight read of the body.
func DoPostSync(ctx context.Context, client *http.Client, url string, body any, headers ...HeaderOption) (*http.Response, []byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	headers = append([]HeaderOption{{Key: "Content-Type", Value: "application/json"}}, headers...)
	return doSync(ctx, client, http.MethodPost, url, jsonBody, headers)
}

func doSync(ctx context.Context, client *http.Client, method, url string, payload []byte, headers []HeaderOption) (*http.Response, []byte, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(payload)),
		)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration(observability.AttrHTTPDuration, requestDuration),
			)
		}
		return nil, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPDuration, time.Since(requestStart)),
		)
	}

	return res, respBody, nil
}

// IsSuccessStatus reports whether code is in the 2xx range.
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// CloseWithLog closes c and logs a warning if that fails. It is meant for
// deferred cleanup of response bodies where the close error must not replace
// the function's primary result.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
