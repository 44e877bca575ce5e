package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skilledu/skilledu-go/internal/utils"
	"github.com/skilledu/skilledu-go/providers/ai"
	"github.com/skilledu/skilledu-go/providers/observability"
)

const (
	// DefaultBaseURL is the production gateway endpoint.
	DefaultBaseURL = "https://api.skilledu.in/api/ai_gateway.php"

	// EnvBaseURL names the environment variable read by NewFromEnv.
	EnvBaseURL = "SKILLEDU_GATEWAY_URL"

	modelsQuery = "?action=models"

	operationChat       = "chat"
	operationListModels = "list_models"
)

// Client talks to a single gateway endpoint. All fields are set by New and
// never change, so a Client can be shared between goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   observability.Provider
}

var _ ai.Provider = (*Client)(nil)

// New returns a Client for baseURL. One trailing slash is stripped. An empty
// baseURL yields ErrInvalidArgument. No network activity happens here.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: baseURL is required", ai.ErrInvalidArgument)
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromEnv builds a Client from SKILLEDU_GATEWAY_URL, falling back to
// DefaultBaseURL when the variable is unset or empty.
func NewFromEnv(opts ...Option) (*Client, error) {
	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return New(baseURL, opts...)
}

// BaseURL returns the normalized endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels fetches the model identifiers offered by the gateway. A
// non-positive timeout means ai.DefaultListModelsTimeout.
func (c *Client) ListModels(ctx context.Context, timeout time.Duration) ([]string, error) {
	timeout = ai.EffectiveTimeout(timeout, ai.DefaultListModelsTimeout)
	ctx, rec := c.startCall(ctx, operationListModels, observability.SpanGatewayListModels, timeout)

	body, err := c.exchange(ctx, timeout, func(ctx context.Context) (*http.Response, []byte, error) {
		return utils.DoGetSync(ctx, c.httpClient, c.baseURL+modelsQuery)
	})

	var models []string
	if err == nil {
		models, err = ai.DecodeModelsEnvelope(body)
	}
	if err != nil {
		rec.fail(err)
		return nil, err
	}

	rec.succeed(observability.Int(observability.AttrGatewayModelsCount, len(models)))
	return models, nil
}

// Chat sends request and returns the reply text. A missing reply is "".
// Request.Timeout bounds the whole exchange; non-positive means
// ai.DefaultChatTimeout.
func (c *Client) Chat(ctx context.Context, request ai.ChatRequest) (string, error) {
	timeout := ai.EffectiveTimeout(request.Timeout, ai.DefaultChatTimeout)
	ctx, rec := c.startCall(ctx, operationChat, observability.SpanGatewayChat, timeout,
		observability.String(observability.AttrGatewayRequestShape, request.Shape()),
		observability.String(observability.AttrLLMModel, request.Model),
		observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
	)

	payload, err := ai.BuildChatPayload(request)
	if err != nil {
		rec.fail(err)
		return "", err
	}
	rec.annotate(
		observability.Float64(observability.AttrLLMTemperature, payload.Temperature),
		observability.Int(observability.AttrLLMMaxTokens, payload.MaxTokens),
	)

	body, err := c.exchange(ctx, timeout, func(ctx context.Context) (*http.Response, []byte, error) {
		return utils.DoPostSync(ctx, c.httpClient, c.baseURL, payload)
	})

	var reply string
	if err == nil {
		reply, err = ai.DecodeChatEnvelope(body)
	}
	if err != nil {
		rec.fail(err)
		return "", err
	}

	rec.succeed(
		observability.Int(observability.AttrResponseLength, len(reply)),
		observability.String(observability.AttrResponseContent, utils.TruncateString(reply, 100)),
	)
	return reply, nil
}

// SendMessage implements ai.Provider on top of Chat.
func (c *Client) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	reply, err := c.Chat(ctx, request)
	if err != nil {
		return nil, err
	}
	return &ai.ChatResponse{Content: reply, Model: request.Model}, nil
}

// exchange runs send under a deadline of timeout and maps the outcome onto
// the error taxonomy. On success it returns the raw 2xx body.
func (c *Client) exchange(ctx context.Context, timeout time.Duration, send func(context.Context) (*http.Response, []byte, error)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, body, err := send(ctx)
	if err != nil {
		return nil, transportError(ctx, timeout, err)
	}

	if !utils.IsSuccessStatus(res.StatusCode) {
		return nil, &ai.HTTPError{StatusCode: res.StatusCode, Body: string(body)}
	}
	return body, nil
}

func transportError(ctx context.Context, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		if !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return fmt.Errorf("%w after %s: %w", ai.ErrTimeout, timeout, err)
	}
	return fmt.Errorf("%w: %w", ai.ErrNetwork, err)
}

/*
	##### OBSERVABILITY #####
*/

// callRecorder carries the span and timing of one call. Every method is a
// no-op when no observer is configured.
type callRecorder struct {
	ctx       context.Context
	observer  observability.Provider
	span      observability.Span
	timer     *utils.Timer
	operation string
	baseAttrs []observability.Attribute
}

func (c *Client) startCall(ctx context.Context, operation, spanName string, timeout time.Duration, attrs ...observability.Attribute) (context.Context, *callRecorder) {
	observer := c.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}
	rec := &callRecorder{observer: observer, operation: operation, timer: utils.NewTimer()}
	if observer == nil {
		rec.ctx = ctx
		return ctx, rec
	}

	rec.baseAttrs = []observability.Attribute{
		observability.String(observability.AttrGatewayOperation, operation),
		observability.String(observability.AttrGatewayBaseURL, c.baseURL),
	}
	spanAttrs := append([]observability.Attribute{
		observability.String(observability.AttrGatewayRequestID, uuid.NewString()),
		observability.Duration(observability.AttrGatewayTimeout, timeout),
	}, rec.baseAttrs...)
	spanAttrs = append(spanAttrs, attrs...)

	ctx, rec.span = observer.StartSpan(ctx, spanName, spanAttrs...)
	ctx = observability.ContextWithSpan(ctx, rec.span)
	rec.ctx = ctx

	observer.Debug(ctx, "gateway request", spanAttrs...)
	return ctx, rec
}

func (r *callRecorder) annotate(attrs ...observability.Attribute) {
	if r.span != nil {
		r.span.SetAttributes(attrs...)
	}
}

func (r *callRecorder) fail(err error) {
	elapsed := r.timer.Stop()
	if r.observer == nil {
		return
	}

	kind := ai.ErrorKind(err)
	attrs := append([]observability.Attribute{
		observability.String(observability.AttrStatus, "error"),
		observability.String(observability.AttrGatewayErrorKind, kind),
	}, r.baseAttrs...)

	r.span.RecordError(err)
	r.span.SetAttributes(observability.String(observability.AttrGatewayErrorKind, kind))
	r.span.SetStatus(observability.StatusError, "gateway "+r.operation+" failed")
	r.span.End()

	r.observer.Counter(observability.MetricGatewayRequestCount).Add(r.ctx, 1, attrs...)
	r.observer.Histogram(observability.MetricGatewayRequestDuration).Record(r.ctx, elapsed.Seconds(), attrs...)
	r.observer.Error(r.ctx, "gateway request failed",
		append(attrs, observability.Error(err), observability.Duration(observability.AttrDuration, elapsed))...)
}

func (r *callRecorder) succeed(attrs ...observability.Attribute) {
	elapsed := r.timer.Stop()
	if r.observer == nil {
		return
	}

	metricAttrs := append([]observability.Attribute{
		observability.String(observability.AttrStatus, "success"),
	}, r.baseAttrs...)

	r.span.SetAttributes(attrs...)
	r.span.SetStatus(observability.StatusOK, "success")
	r.span.End()

	r.observer.Counter(observability.MetricGatewayRequestCount).Add(r.ctx, 1, metricAttrs...)
	r.observer.Histogram(observability.MetricGatewayRequestDuration).Record(r.ctx, elapsed.Seconds(), metricAttrs...)
	r.observer.Info(r.ctx, "gateway request completed",
		append(append(metricAttrs, attrs...), observability.Duration(observability.AttrDuration, elapsed))...)
}
