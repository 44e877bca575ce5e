package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks malformed local input. It is returned before
	// any network activity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrProtocol is returned when a 2xx response body is not a JSON object.
	ErrProtocol = errors.New("invalid response")

	// ErrTimeout is returned when the call's deadline expires before the
	// exchange completes. Errors carrying it also match context.DeadlineExceeded.
	ErrTimeout = errors.New("request timed out")

	// ErrNetwork wraps transport failures other than timeouts.
	ErrNetwork = errors.New("network error")
)

// DefaultRequestErrorMessage is used when the gateway reports failure
// without an error message.
const DefaultRequestErrorMessage = "Request failed"

// HTTPError is returned for a non-2xx response. Body is the raw response text.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// RequestError is returned when the gateway answers 2xx with a falsy
// success flag. Its message is the gateway's error text verbatim.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// IsTimeout reports whether err is a deadline expiry.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// ErrorKind classifies err for logs and metrics: invalid_argument, http,
// protocol, request, timeout, network, canceled or unknown. A nil error
// yields "".
func ErrorKind(err error) string {
	var httpErr *HTTPError
	var reqErr *RequestError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.As(err, &httpErr):
		return "http"
	case errors.Is(err, ErrProtocol):
		return "protocol"
	case errors.As(err, &reqErr):
		return "request"
	case IsTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
