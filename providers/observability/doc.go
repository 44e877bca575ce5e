// Package observability defines the tracing, metrics and logging interfaces
// used by the gateway client, independent of any backend.
//
// [Provider] composes [Tracer], [Metrics] and [Logger]. An active Provider and
// [Span] travel through a [context.Context] via [ContextWithObserver] and
// [ContextWithSpan]. Backends live in sub-packages: slogobs (log/slog) and
// otelobs (OpenTelemetry).
//
// semconv.go holds the attribute keys, span names and metric names.
package observability
