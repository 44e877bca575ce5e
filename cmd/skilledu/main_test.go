package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeGateway answers list-models and chat requests and remembers the last
// chat payload.
type fakeGateway struct {
	mu        sync.Mutex
	models    string
	reply     string
	lastChat  map[string]any
	chatCalls int
}

func (g *fakeGateway) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") == "models" {
		fmt.Fprintf(w, `{"success":true,"models":%s}`, g.models)
		return
	}

	body, _ := io.ReadAll(r.Body)
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	g.mu.Lock()
	g.lastChat = payload
	g.chatCalls++
	g.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "response": g.reply})
}

func newFakeGateway(t *testing.T) (*fakeGateway, *httptest.Server) {
	t.Helper()
	g := &fakeGateway{models: `["gpt-4o-mini","llama-3"]`, reply: "hello"}
	server := httptest.NewServer(http.HandlerFunc(g.handler))
	t.Cleanup(server.Close)
	return g, server
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestModelsCommand_Formats verifies every output format.
func TestModelsCommand_Formats(t *testing.T) {
	_, server := newFakeGateway(t)

	tests := []struct {
		format string
		want   string
	}{
		{format: "text", want: "gpt-4o-mini\nllama-3\n"},
		{format: "json", want: "{\n  \"models\": [\n    \"gpt-4o-mini\",\n    \"llama-3\"\n  ]\n}\n"},
		{format: "yaml", want: "models:\n  - gpt-4o-mini\n  - llama-3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCLI(t, "--url", server.URL, "models", "--output", tt.format)
			if err != nil {
				t.Fatalf("models failed: %v", err)
			}
			if out != tt.want {
				t.Errorf("output mismatch\n got: %q\nwant: %q", out, tt.want)
			}
		})
	}
}

// TestModelsCommand_UnknownFormat verifies a bad --output is rejected.
func TestModelsCommand_UnknownFormat(t *testing.T) {
	_, server := newFakeGateway(t)
	if _, err := runCLI(t, "--url", server.URL, "models", "-o", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// TestChatCommand_PositionalMessage verifies positional args become the
// message and defaults are sent.
func TestChatCommand_PositionalMessage(t *testing.T) {
	g, server := newFakeGateway(t)

	out, err := runCLI(t, "--url", server.URL, "chat", "Hello", "there")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if out != "hello\n" {
		t.Errorf("unexpected output %q", out)
	}
	if g.lastChat["message"] != "Hello there" {
		t.Errorf("unexpected message %v", g.lastChat["message"])
	}
	if g.lastChat["temperature"] != 0.7 || g.lastChat["max_tokens"] != float64(1000) {
		t.Errorf("unexpected defaults %v", g.lastChat)
	}
}

// TestChatCommand_Options verifies explicit options and the global model.
func TestChatCommand_Options(t *testing.T) {
	g, server := newFakeGateway(t)

	_, err := runCLI(t, "--url", server.URL, "--model", "llama-3",
		"chat", "--system", "You are helpful.", "--user", "Who are you?",
		"--temperature", "0", "--max-tokens", "120")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if g.lastChat["model"] != "llama-3" {
		t.Errorf("expected model from global flag, got %v", g.lastChat["model"])
	}
	if g.lastChat["temperature"] != float64(0) || g.lastChat["max_tokens"] != float64(120) {
		t.Errorf("unexpected options %v", g.lastChat)
	}
	if g.lastChat["system"] != "You are helpful." || g.lastChat["user"] != "Who are you?" {
		t.Errorf("unexpected roles %v", g.lastChat)
	}
}

// TestChatCommand_LenientMessages verifies hand-typed JSON is repaired and
// wins over flat fields.
func TestChatCommand_LenientMessages(t *testing.T) {
	g, server := newFakeGateway(t)

	_, err := runCLI(t, "--url", server.URL, "chat", "-m", "ignored",
		"--messages", `[{role: 'system', content: 'Be brief.'}, {role: 'user', content: 'Hi'},]`)
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	messages, ok := g.lastChat["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected two messages, got %v", g.lastChat["messages"])
	}
	if _, ok := g.lastChat["message"]; ok {
		t.Error("message must be dropped when messages are sent")
	}
}

// TestChatCommand_MessagesFromFile verifies the @file form.
func TestChatCommand_MessagesFromFile(t *testing.T) {
	g, server := newFakeGateway(t)

	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte(`[{"role":"user","content":"from file"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--url", server.URL, "chat", "--messages", "@"+path); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	messages, _ := g.lastChat["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %v", g.lastChat)
	}
}

// TestChatCommand_Markdown verifies HTML replies are converted.
func TestChatCommand_Markdown(t *testing.T) {
	g, server := newFakeGateway(t)
	g.reply = "<p>Use <strong>Go</strong></p>"

	out, err := runCLI(t, "--url", server.URL, "chat", "--markdown", "hi")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if strings.TrimSpace(out) != "Use **Go**" {
		t.Errorf("unexpected markdown %q", out)
	}
}

// TestChatCommand_InvalidArgument verifies an empty request fails without a
// network call.
func TestChatCommand_InvalidArgument(t *testing.T) {
	g, server := newFakeGateway(t)

	if _, err := runCLI(t, "--url", server.URL, "chat"); err == nil {
		t.Fatal("expected invalid argument error")
	}
	if g.chatCalls != 0 {
		t.Errorf("expected no gateway calls, got %d", g.chatCalls)
	}
}

// TestConfigFile verifies settings are read from a YAML config and flags
// still take precedence.
func TestConfigFile(t *testing.T) {
	g, server := newFakeGateway(t)

	cfg := filepath.Join(t.TempDir(), "skilledu.yaml")
	content := fmt.Sprintf("gateway_url: %s\nmodel: from-config\nrequest_log: standard\n", server.URL)
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "--config", cfg, "chat", "hi"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if g.lastChat["model"] != "from-config" {
		t.Errorf("expected model from config, got %v", g.lastChat["model"])
	}

	if _, err := runCLI(t, "--config", cfg, "--model", "from-flag", "chat", "hi"); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if g.lastChat["model"] != "from-flag" {
		t.Errorf("expected flag to win, got %v", g.lastChat["model"])
	}
}

// TestEnvironment verifies SKILLEDU_GATEWAY_URL selects the endpoint.
func TestEnvironment(t *testing.T) {
	_, server := newFakeGateway(t)
	t.Setenv("SKILLEDU_GATEWAY_URL", server.URL)

	out, err := runCLI(t, "models")
	if err != nil {
		t.Fatalf("models failed: %v", err)
	}
	if !strings.Contains(out, "gpt-4o-mini") {
		t.Errorf("unexpected output %q", out)
	}
}

// TestParseRequestLog covers the accepted values.
func TestParseRequestLog(t *testing.T) {
	for _, s := range []string{"", "off", "minimal", "Standard", "verbose"} {
		if _, _, err := parseRequestLog(s); err != nil {
			t.Errorf("parseRequestLog(%q) failed: %v", s, err)
		}
	}
	if _, _, err := parseRequestLog("loud"); err == nil {
		t.Error("expected error for unknown value")
	}
}

// TestDemoCommand verifies every step runs and failures do not stop the walk.
func TestDemoCommand(t *testing.T) {
	g, server := newFakeGateway(t)

	out, err := runCLI(t, "--url", server.URL, "demo")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	for _, step := range demoSteps {
		if !strings.Contains(out, "== "+step.title+" ==") {
			t.Errorf("missing step %q in output:\n%s", step.title, out)
		}
	}
	if g.chatCalls != len(demoSteps)-1 {
		t.Errorf("expected %d chat calls, got %d", len(demoSteps)-1, g.chatCalls)
	}
}

// TestDemoCommand_ContinuesAfterFailure verifies log-and-continue.
func TestDemoCommand_ContinuesAfterFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") == "models" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "down")
			return
		}
		fmt.Fprint(w, `{"success":true,"response":"ok"}`)
	}))
	defer server.Close()

	out, err := runCLI(t, "--url", server.URL, "demo")
	if err == nil || !strings.Contains(err.Error(), "1 of 6") {
		t.Fatalf("expected one failed step, got %v", err)
	}
	if !strings.Contains(out, "Error: HTTP 500: down") {
		t.Errorf("expected error line in output:\n%s", out)
	}
	if strings.Count(out, "ok\n") != len(demoSteps)-1 {
		t.Errorf("expected remaining steps to succeed:\n%s", out)
	}
}

// TestObserverSelection verifies both backends run and unknown ones fail.
func TestObserverSelection(t *testing.T) {
	_, server := newFakeGateway(t)

	for _, backend := range []string{"slog", "otel"} {
		if _, err := runCLI(t, "--url", server.URL, "--observer", backend, "models"); err != nil {
			t.Errorf("observer %s: %v", backend, err)
		}
	}
	if _, err := runCLI(t, "--url", server.URL, "--observer", "statsd", "models"); err == nil {
		t.Error("expected error for unknown observer")
	}
}
