package observability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// TestAttributeConstructors verifies that every constructor keeps the key and
// stores the value with its original dynamic type.
func TestAttributeConstructors(t *testing.T) {
	tests := []struct {
		name      string
		attr      Attribute
		wantKey   string
		wantValue any
	}{
		{"string", String("k", "v"), "k", "v"},
		{"int", Int("k", 42), "k", 42},
		{"int64", Int64("k", 1<<40), "k", int64(1 << 40)},
		{"float64", Float64("k", 0.7), "k", 0.7},
		{"bool", Bool("k", true), "k", true},
		{"duration", Duration("k", 30 * time.Second), "k", 30 * time.Second},
		{"string slice", StringSlice("k", []string{"a", "b"}), "k", []string{"a", "b"}},
		{"error", Error(errors.New("boom")), AttrError, "boom"},
		{"nil error", Error(nil), AttrError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if !reflect.DeepEqual(tt.attr.Value, tt.wantValue) {
				t.Errorf("value = %#v, want %#v", tt.attr.Value, tt.wantValue)
			}
		})
	}
}

// TestStatusCode_Values pins the numeric values backends may switch on.
func TestStatusCode_Values(t *testing.T) {
	if StatusUnset != 0 || StatusOK != 1 || StatusError != 2 {
		t.Errorf("unexpected status codes: %d %d %d", StatusUnset, StatusOK, StatusError)
	}
}

// ---- context propagation ----------------------------------------------------

type stubSpan struct{ name string }

func (s *stubSpan) End()                          {}
func (s *stubSpan) SetAttributes(...Attribute)    {}
func (s *stubSpan) SetStatus(StatusCode, string)  {}
func (s *stubSpan) RecordError(error)             {}
func (s *stubSpan) AddEvent(string, ...Attribute) {}

type stubObserver struct{ label string }

func (o *stubObserver) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, &stubSpan{}
}
func (o *stubObserver) Counter(string) Counter                      { return nil }
func (o *stubObserver) Histogram(string) Histogram                  { return nil }
func (o *stubObserver) Trace(context.Context, string, ...Attribute) {}
func (o *stubObserver) Debug(context.Context, string, ...Attribute) {}
func (o *stubObserver) Info(context.Context, string, ...Attribute)  {}
func (o *stubObserver) Warn(context.Context, string, ...Attribute)  {}
func (o *stubObserver) Error(context.Context, string, ...Attribute) {}

type otherKey string

// TestSpanContext_RoundTrip verifies storage, overwrite and survival through
// unrelated context wrapping.
func TestSpanContext_RoundTrip(t *testing.T) {
	if SpanFromContext(context.Background()) != nil {
		t.Fatal("expected nil span from empty context")
	}

	first := &stubSpan{name: "first"}
	second := &stubSpan{name: "second"}

	ctx := ContextWithSpan(context.Background(), first)
	ctx = ContextWithSpan(ctx, second)
	ctx = context.WithValue(ctx, otherKey("k"), "v")

	if got := SpanFromContext(ctx); got != second {
		t.Errorf("expected most recent span, got %v", got)
	}
}

// TestSpanFromContext_WrongType verifies that a foreign value under the key
// type is ignored.
func TestSpanFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), spanKey{}, "not a span")
	if SpanFromContext(ctx) != nil {
		t.Error("expected nil for non-Span value")
	}
}

// TestObserverContext_RoundTrip verifies that the exact observer instance is
// returned and that nil contexts are tolerated.
func TestObserverContext_RoundTrip(t *testing.T) {
	observer := &stubObserver{label: "obs"}
	ctx := ContextWithObserver(context.Background(), observer)

	if got := ObserverFromContext(ctx); got != observer {
		t.Errorf("expected stored observer, got %v", got)
	}
	if ObserverFromContext(context.Background()) != nil {
		t.Error("expected nil observer from empty context")
	}
	//nolint:staticcheck // nil context on purpose
	if ObserverFromContext(nil) != nil {
		t.Error("expected nil observer from nil context")
	}
}
