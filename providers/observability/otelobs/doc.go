// Package otelobs implements observability.Provider with the OpenTelemetry
// API: spans go to a trace.Tracer, counters and histograms to a metric.Meter,
// and log calls to a slog.Logger enriched with the active trace and span IDs.
//
// SDK setup (exporters, resources, sampling) stays with the application; by
// default the global providers registered with otel are used.
package otelobs
