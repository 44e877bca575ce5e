package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/skilledu/skilledu-go/core/client"
	"github.com/skilledu/skilledu-go/internal/utils"
	"github.com/skilledu/skilledu-go/providers/ai"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only the model name, duration and error.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the request shape, message count and sampling
	// options. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose adds the request text and the reply, each truncated to
	// 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. It logs raw prompt
	// and response text, which may contain sensitive user data.
	LogLevelVerbose
)

// truncateLen is the maximum content length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a MiddlewareConfig that emits structured slog
// entries before and after every chat and list-models call. The logger must
// not be nil; use slog.Default() when no custom logger is configured.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) client.MiddlewareConfig {
	return client.MiddlewareConfig{
		Send:   buildSendLogging(logger, level),
		Models: buildModelsLogging(logger),
	}
}

func buildSendLogging(logger *slog.Logger, level LogLevel) client.Middleware {
	return func(next client.SendFunc) client.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			logger.InfoContext(ctx, "gateway chat", buildRequestAttrs(request, level)...)

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "gateway chat failed",
					slog.String("model", request.Model),
					slog.Duration("duration", elapsed),
					slog.String("error_kind", ai.ErrorKind(err)),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "gateway chat completed", buildResponseAttrs(response, elapsed, level)...)
			return response, nil
		}
	}
}

func buildModelsLogging(logger *slog.Logger) client.ModelsMiddleware {
	return func(next client.ModelsFunc) client.ModelsFunc {
		return func(ctx context.Context, timeout time.Duration) ([]string, error) {
			logger.InfoContext(ctx, "gateway list models")

			start := time.Now()
			models, err := next(ctx, timeout)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "gateway list models failed",
					slog.Duration("duration", elapsed),
					slog.String("error_kind", ai.ErrorKind(err)),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "gateway list models completed",
				slog.Int("models_count", len(models)),
				slog.Duration("duration", elapsed),
			)
			return models, nil
		}
	}
}

// buildRequestAttrs returns slog attributes for an outgoing chat request,
// expanding detail according to the requested verbosity level.
func buildRequestAttrs(request ai.ChatRequest, level LogLevel) []any {
	attrs := []any{
		slog.String("model", request.Model),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("shape", request.Shape()),
			slog.Int("message_count", len(request.Messages)),
		)
		if request.Temperature != nil {
			attrs = append(attrs, slog.Float64("temperature", *request.Temperature))
		}
		if request.MaxTokens != nil {
			attrs = append(attrs, slog.Int("max_tokens", *request.MaxTokens))
		}
	}

	if level >= LogLevelVerbose {
		if len(request.Messages) > 0 {
			first := request.Messages[0]
			attrs = append(attrs,
				slog.String("first_message_role", string(first.Role)),
				slog.String("first_message_content", utils.TruncateString(first.Content, truncateLen)),
			)
		}
		fields := [...]struct{ key, value string }{
			{"system", request.System},
			{"user", request.User},
			{"assistant", request.Assistant},
			{"message", request.Message},
		}
		for _, f := range fields {
			if f.value != "" {
				attrs = append(attrs, slog.String(f.key, utils.TruncateString(f.value, truncateLen)))
			}
		}
	}

	return attrs
}

// buildResponseAttrs returns slog attributes for a completed chat response.
func buildResponseAttrs(response *ai.ChatResponse, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("model", response.Model),
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs, slog.Int("response_length", len(response.Content)))
	}

	if level >= LogLevelVerbose && response.Content != "" {
		attrs = append(attrs,
			slog.String("response_content", utils.TruncateString(response.Content, truncateLen)),
		)
	}

	return attrs
}
