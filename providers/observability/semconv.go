package observability

// Attribute keys, span names and metric names shared by every component, so
// that slog and OpenTelemetry backends see the same vocabulary.

// --- Gateway Attributes ---

const (
	// AttrGatewayBaseURL is the normalized gateway endpoint
	AttrGatewayBaseURL = "gateway.base_url"

	// AttrGatewayOperation is the client operation ("chat" or "list_models")
	AttrGatewayOperation = "gateway.operation"

	// AttrGatewayRequestID is a client-generated identifier for one call
	AttrGatewayRequestID = "gateway.request.id"

	// AttrGatewayTimeout is the deadline applied to the call
	AttrGatewayTimeout = "gateway.timeout"

	// AttrGatewayRequestShape is the chat input form: "messages", "roles" or "message"
	AttrGatewayRequestShape = "gateway.request.shape"

	// AttrGatewayModelsCount is the number of models returned by list_models
	AttrGatewayModelsCount = "gateway.models.count"

	// AttrGatewayErrorKind is the error category (invalid_argument, http, protocol, request, timeout, network)
	AttrGatewayErrorKind = "gateway.error.kind"
)

// --- LLM Attributes ---

const (
	// AttrLLMModel is the requested model; empty means the gateway default
	AttrLLMModel = "llm.model"

	// AttrLLMTemperature is the sampling temperature sent
	AttrLLMTemperature = "llm.temperature"

	// AttrLLMMaxTokens is the completion token limit sent
	AttrLLMMaxTokens = "llm.max_tokens" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Request/Response Attributes ---

const (
	// AttrRequestMessagesCount is the number of structured messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrResponseContent is the (truncated) reply text
	AttrResponseContent = "response.content"

	// AttrResponseLength is the reply length in bytes
	AttrResponseLength = "response.length"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"

	// AttrHTTPDuration is the time spent in the HTTP exchange
	AttrHTTPDuration = "http.request.duration"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrErrorType         = "error.type"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanGatewayChat wraps one chat call
	SpanGatewayChat = "gateway.chat"

	// SpanGatewayListModels wraps one list_models call
	SpanGatewayListModels = "gateway.list_models"

	// SpanClientChat is the orchestration-level span opened by core/client
	SpanClientChat = "client.chat"

	// SpanClientListModels is the orchestration-level span opened by core/client
	SpanClientListModels = "client.list_models"
)

// --- Metric Names ---

const (
	// MetricGatewayRequestCount counts gateway calls by operation and status
	MetricGatewayRequestCount = "skilledu.gateway.request.count"

	// MetricGatewayRequestDuration records gateway call latency in seconds
	MetricGatewayRequestDuration = "skilledu.gateway.request.duration"

	// MetricClientRequestCount counts orchestration-level calls
	MetricClientRequestCount = "skilledu.client.request.count"

	// MetricClientRequestDuration records orchestration-level latency in seconds
	MetricClientRequestDuration = "skilledu.client.request.duration"
)
