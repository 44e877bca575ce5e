package client

import (
	"context"
	"time"

	"github.com/skilledu/skilledu-go/internal/utils"
	"github.com/skilledu/skilledu-go/providers/ai"
	"github.com/skilledu/skilledu-go/providers/observability"
)

// NewObservabilityMiddleware creates a MiddlewareConfig that opens a span,
// records metrics and emits log events for every chat and list-models call.
//
// The span and the observer are injected into the context before calling
// next, so providers can attach child spans via [observability.SpanFromContext]
// and [observability.ObserverFromContext].
//
// [New] prepends it automatically when [WithObserver] is given, making it the
// outermost wrapper: it sees the final outcome after every other middleware.
func NewObservabilityMiddleware(observer observability.Provider) MiddlewareConfig {
	return MiddlewareConfig{
		Send:   buildObsSend(observer),
		Models: buildObsModels(observer),
	}
}

func buildObsSend(observer observability.Provider) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			attrs := []observability.Attribute{
				observability.String(observability.AttrLLMModel, request.Model),
				observability.String(observability.AttrGatewayRequestShape, request.Shape()),
			}

			ctx, span := startObsSpan(ctx, observer, observability.SpanClientChat, attrs)
			observer.Debug(ctx, "client chat",
				append(attrs, observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)))...)

			timer := utils.NewTimer()
			response, err := next(ctx, request)
			timer.Stop()

			if err != nil {
				recordObsError(ctx, span, observer, "client chat failed", err, timer.GetDuration(), attrs)
				return nil, err
			}

			logAttrs := append(attrs,
				observability.Int(observability.AttrResponseLength, len(response.Content)),
			)
			if response.Content != "" {
				logAttrs = append(logAttrs,
					observability.String(observability.AttrResponseContent, utils.TruncateString(response.Content, 100)),
				)
			}
			recordObsSuccess(ctx, span, observer, "client chat completed", timer.GetDuration(), attrs, logAttrs)
			return response, nil
		}
	}
}

func buildObsModels(observer observability.Provider) ModelsMiddleware {
	return func(next ModelsFunc) ModelsFunc {
		return func(ctx context.Context, timeout time.Duration) ([]string, error) {
			attrs := []observability.Attribute{
				observability.String(observability.AttrGatewayOperation, "list_models"),
			}

			ctx, span := startObsSpan(ctx, observer, observability.SpanClientListModels, attrs)
			observer.Debug(ctx, "client list models", attrs...)

			timer := utils.NewTimer()
			models, err := next(ctx, timeout)
			timer.Stop()

			if err != nil {
				recordObsError(ctx, span, observer, "client list models failed", err, timer.GetDuration(), attrs)
				return nil, err
			}

			logAttrs := append(attrs, observability.Int(observability.AttrGatewayModelsCount, len(models)))
			recordObsSuccess(ctx, span, observer, "client list models completed", timer.GetDuration(), attrs, logAttrs)
			return models, nil
		}
	}
}

func startObsSpan(ctx context.Context, observer observability.Provider, name string, attrs []observability.Attribute) (context.Context, observability.Span) {
	ctx, span := observer.StartSpan(ctx, name, attrs...)
	ctx = observability.ContextWithSpan(ctx, span)
	ctx = observability.ContextWithObserver(ctx, observer)
	return ctx, span
}

// recordObsError writes the failure-path span status, counter and log entry,
// then ends the span.
func recordObsError(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	msg string,
	err error,
	elapsed time.Duration,
	attrs []observability.Attribute,
) {
	span.RecordError(err)
	span.SetStatus(observability.StatusError, msg)
	span.End()

	observer.Error(ctx, msg,
		append(attrs,
			observability.Error(err),
			observability.String(observability.AttrGatewayErrorKind, ai.ErrorKind(err)),
			observability.Duration(observability.AttrDuration, elapsed),
		)...)

	observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
		append(attrs, observability.String(observability.AttrStatus, "error"))...)
}

// recordObsSuccess writes the duration histogram, request counter and INFO log,
// then ends the span.
func recordObsSuccess(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	msg string,
	elapsed time.Duration,
	attrs []observability.Attribute,
	logAttrs []observability.Attribute,
) {
	observer.Histogram(observability.MetricClientRequestDuration).Record(ctx, elapsed.Seconds(), attrs...)
	observer.Counter(observability.MetricClientRequestCount).Add(ctx, 1,
		append(attrs, observability.String(observability.AttrStatus, "success"))...)

	observer.Info(ctx, msg, append(logAttrs, observability.Duration(observability.AttrDuration, elapsed))...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}
