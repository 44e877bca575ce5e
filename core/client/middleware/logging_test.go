package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/skilledu/skilledu-go/core/client"
	"github.com/skilledu/skilledu-go/providers/ai"
)

// stubProvider returns fixed results.
type stubProvider struct {
	reply  string
	models []string
	err    error
}

func (p *stubProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ai.ChatResponse{Content: p.reply, Model: request.Model}, nil
}

func (p *stubProvider) ListModels(context.Context, time.Duration) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.models, nil
}

// logEntries decodes JSON log lines written to buf.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func newLoggedClient(t *testing.T, provider ai.Provider, level LogLevel) (*client.Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	c, err := client.New(provider, client.WithMiddleware(NewLoggingMiddleware(logger, level)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, &buf
}

// TestLoggingMiddleware_Minimal verifies minimal entries omit detail fields.
func TestLoggingMiddleware_Minimal(t *testing.T) {
	c, buf := newLoggedClient(t, &stubProvider{reply: "hello"}, LogLevelMinimal)

	if _, err := c.Chat(context.Background(), ai.ChatRequest{Message: "hi", Model: "m"}); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	entries := logEntries(t, buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["msg"] != "gateway chat" || entries[1]["msg"] != "gateway chat completed" {
		t.Errorf("unexpected messages %v / %v", entries[0]["msg"], entries[1]["msg"])
	}
	if _, ok := entries[0]["shape"]; ok {
		t.Error("minimal level must not log the request shape")
	}
	if _, ok := entries[1]["response_content"]; ok {
		t.Error("minimal level must not log the response")
	}
}

// TestLoggingMiddleware_Standard verifies request options are logged.
func TestLoggingMiddleware_Standard(t *testing.T) {
	c, buf := newLoggedClient(t, &stubProvider{reply: "hello"}, LogLevelStandard)

	temperature := 0.6
	if _, err := c.Chat(context.Background(), ai.ChatRequest{User: "hi", Temperature: &temperature}); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	entries := logEntries(t, buf)
	if entries[0]["shape"] != "roles" {
		t.Errorf("expected shape roles, got %v", entries[0]["shape"])
	}
	if entries[0]["temperature"] != 0.6 {
		t.Errorf("expected temperature 0.6, got %v", entries[0]["temperature"])
	}
	if entries[1]["response_length"] != float64(5) {
		t.Errorf("expected response_length 5, got %v", entries[1]["response_length"])
	}
}

// TestLoggingMiddleware_VerboseTruncates verifies content is logged but capped.
func TestLoggingMiddleware_VerboseTruncates(t *testing.T) {
	long := strings.Repeat("x", 2*truncateLen)
	c, buf := newLoggedClient(t, &stubProvider{reply: long}, LogLevelVerbose)

	if _, err := c.Chat(context.Background(), ai.ChatRequest{Message: long}); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	entries := logEntries(t, buf)
	message, _ := entries[0]["message"].(string)
	content, _ := entries[1]["response_content"].(string)
	if message == "" || content == "" {
		t.Fatalf("verbose level must log request and response: %v", entries)
	}
	if len(message) >= len(long) || len(content) >= len(long) {
		t.Errorf("content was not truncated: %d / %d", len(message), len(content))
	}
}

// TestLoggingMiddleware_Error verifies failures are logged with their kind.
func TestLoggingMiddleware_Error(t *testing.T) {
	c, buf := newLoggedClient(t, &stubProvider{err: &ai.RequestError{Message: "boom"}}, LogLevelStandard)

	if _, err := c.Chat(context.Background(), ai.ChatRequest{Message: "hi"}); err == nil {
		t.Fatal("expected error")
	}

	entries := logEntries(t, buf)
	last := entries[len(entries)-1]
	if last["msg"] != "gateway chat failed" || last["level"] != "ERROR" {
		t.Errorf("unexpected entry %v", last)
	}
	if last["error_kind"] != "request" || last["error"] != "boom" {
		t.Errorf("unexpected error fields %v", last)
	}
}

// TestLoggingMiddleware_ListModels verifies the list-models entries.
func TestLoggingMiddleware_ListModels(t *testing.T) {
	c, buf := newLoggedClient(t, &stubProvider{models: []string{"a", "b"}}, LogLevelMinimal)

	if _, err := c.ListModels(context.Background(), 0); err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}

	entries := logEntries(t, buf)
	last := entries[len(entries)-1]
	if last["msg"] != "gateway list models completed" || last["models_count"] != float64(2) {
		t.Errorf("unexpected entry %v", last)
	}
}
