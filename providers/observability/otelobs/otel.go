package otelobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/skilledu/skilledu-go/providers/observability"
)

// InstrumentationName identifies this library to OpenTelemetry.
const InstrumentationName = "github.com/skilledu/skilledu-go"

// Observer bridges observability.Provider to OpenTelemetry.
type Observer struct {
	tracer trace.Tracer
	meter  metric.Meter
	logger *slog.Logger

	mu         sync.Mutex
	counters   map[string]observability.Counter
	histograms map[string]observability.Histogram
}

var _ observability.Provider = (*Observer)(nil)

// Option configures an Observer.
type Option func(*Observer)

// WithTracerProvider takes the tracer from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Observer) {
		o.tracer = tp.Tracer(InstrumentationName)
	}
}

// WithMeterProvider takes the meter from mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Observer) {
		o.meter = mp.Meter(InstrumentationName)
	}
}

// WithLogger sets the logger used for log calls. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Observer) {
		o.logger = logger
	}
}

// New creates an Observer backed by the global otel providers unless
// overridden by options.
func New(opts ...Option) *Observer {
	o := &Observer{
		tracer:     otel.Tracer(InstrumentationName),
		meter:      otel.Meter(InstrumentationName),
		logger:     slog.Default(),
		counters:   make(map[string]observability.Counter),
		histograms: make(map[string]observability.Histogram),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// --- TRACING ---

// StartSpan starts a client-kind span. The returned context carries both the
// otel span and its observability.Span wrapper.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	ctx, s := o.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(toKeyValues(attrs)...),
	)
	wrapped := &span{span: s}
	return observability.ContextWithSpan(ctx, wrapped), wrapped
}

type span struct {
	span trace.Span
}

func (s *span) End() {
	s.span.End()
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.span.SetAttributes(toKeyValues(attrs)...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	switch code {
	case observability.StatusOK:
		s.span.SetStatus(codes.Ok, description)
	case observability.StatusError:
		s.span.SetStatus(codes.Error, description)
	default:
		s.span.SetStatus(codes.Unset, description)
	}
}

func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
}

func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(toKeyValues(attrs)...))
}

// --- METRICS ---

// Counter returns an Int64Counter wrapper, cached per name. Instrument
// creation errors are logged once and yield a counter that drops values.
func (o *Observer) Counter(name string) observability.Counter {
	o.mu.Lock()
	defer o.mu.Unlock()

	if c, ok := o.counters[name]; ok {
		return c
	}

	var c observability.Counter = discard{}
	if inst, err := o.meter.Int64Counter(name); err != nil {
		o.logger.Warn("failed to create otel counter", "metric", name, "error", err)
	} else {
		c = &counter{inst: inst}
	}
	o.counters[name] = c
	return c
}

// Histogram returns a Float64Histogram wrapper, cached per name.
func (o *Observer) Histogram(name string) observability.Histogram {
	o.mu.Lock()
	defer o.mu.Unlock()

	if h, ok := o.histograms[name]; ok {
		return h
	}

	var h observability.Histogram = discard{}
	if inst, err := o.meter.Float64Histogram(name, metric.WithUnit("s")); err != nil {
		o.logger.Warn("failed to create otel histogram", "metric", name, "error", err)
	} else {
		h = &histogram{inst: inst}
	}
	o.histograms[name] = h
	return h
}

type counter struct {
	inst metric.Int64Counter
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.inst.Add(ctx, value, metric.WithAttributes(toKeyValues(attrs)...))
}

type histogram struct {
	inst metric.Float64Histogram
}

func (h *histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.inst.Record(ctx, value, metric.WithAttributes(toKeyValues(attrs)...))
}

type discard struct{}

func (discard) Add(context.Context, int64, ...observability.Attribute)      {}
func (discard) Record(context.Context, float64, ...observability.Attribute) {}

// --- LOGGING ---

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug-4, msg, attrs)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs []observability.Attribute) {
	logAttrs := make([]slog.Attr, 0, len(attrs)+2)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logAttrs = append(logAttrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(ctx, level, msg, logAttrs...)
}

func toKeyValues(attrs []observability.Attribute) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, toKeyValue(attr))
	}
	return out
}

func toKeyValue(attr observability.Attribute) attribute.KeyValue {
	switch v := attr.Value.(type) {
	case string:
		return attribute.String(attr.Key, v)
	case int:
		return attribute.Int(attr.Key, v)
	case int64:
		return attribute.Int64(attr.Key, v)
	case float64:
		return attribute.Float64(attr.Key, v)
	case bool:
		return attribute.Bool(attr.Key, v)
	case time.Duration:
		return attribute.String(attr.Key, v.String())
	case []string:
		return attribute.StringSlice(attr.Key, v)
	default:
		return attribute.String(attr.Key, fmt.Sprint(v))
	}
}
