package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/skilledu/skilledu-go/core/client"
	"github.com/skilledu/skilledu-go/internal/utils"
	"github.com/skilledu/skilledu-go/providers/ai"
	"github.com/skilledu/skilledu-go/providers/observability"
)

// demoStep is one call of the walkthrough. Exactly one of chat or models is
// meaningful: a step with listModels set ignores chat.
type demoStep struct {
	title      string
	listModels bool
	chat       ai.ChatRequest
}

var demoSteps = []demoStep{
	{title: "List models", listModels: true},
	{title: "Chat (minimal)", chat: ai.ChatRequest{Message: "Hello from the Go SDK!"}},
	{title: "Chat (system/user)", chat: ai.ChatRequest{System: "You are helpful.", User: "Who are you?"}},
	{title: "Chat (assistant only)", chat: ai.ChatRequest{Assistant: "Previously, I summarized the topic."}},
	{title: "Chat (messages array)", chat: ai.ChatRequest{Messages: []ai.Message{
		{Role: ai.RoleSystem, Content: "You are a concise assistant."},
		{Role: ai.RoleUser, Content: "Explain LLMs briefly."},
	}}},
	{title: "Chat (with options)", chat: ai.ChatRequest{
		Message:     "Write a one-liner motivational quote.",
		Temperature: utils.Ptr(0.6),
		MaxTokens:   utils.Ptr(120),
	}},
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run every request shape against the gateway",
		Long: `Run a fixed walkthrough: list models, then one chat call per input shape.
A failing step is reported and the walkthrough continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			failed := runDemo(cmd.Context(), c, a.observer, cmd.OutOrStdout())
			if failed > 0 {
				return fmt.Errorf("%d of %d demo steps failed", failed, len(demoSteps))
			}
			return nil
		},
	}
}

// runDemo executes every step, printing results and errors, and returns the
// number of failed steps.
func runDemo(ctx context.Context, c *client.Client, logger observability.Logger, out io.Writer) int {
	failed := 0
	for i, step := range demoSteps {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", step.title)

		var (
			result any
			err    error
		)
		if step.listModels {
			result, err = c.ListModels(ctx, 0)
		} else {
			result, err = c.Chat(ctx, step.chat)
		}

		if err != nil {
			failed++
			fmt.Fprintf(out, "Error: %v\n", err)
			logger.Warn(ctx, "demo step failed",
				observability.String("step", step.title),
				observability.String(observability.AttrGatewayErrorKind, ai.ErrorKind(err)),
			)
			continue
		}
		fmt.Fprintln(out, result)
	}
	return failed
}
