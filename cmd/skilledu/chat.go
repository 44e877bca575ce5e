package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"

	"github.com/skilledu/skilledu-go/internal/utils"
	"github.com/skilledu/skilledu-go/providers/ai"
	"github.com/skilledu/skilledu-go/providers/observability"
)

type chatFlags struct {
	message     string
	system      string
	user        string
	assistant   string
	messages    string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	markdown    bool
}

func newChatCmd(a *app) *cobra.Command {
	var f chatFlags

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a chat request and print the reply",
		Long: `Send a chat request and print the reply.

The request is one of: a single message (flag or positional arguments), any
of --system/--user/--assistant, or a JSON list of {role, content} objects via
--messages. When --messages is given the other content flags are ignored.
--messages accepts @path to read the list from a file; hand-typed JSON with
single quotes or unquoted keys is repaired before decoding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := f.request(cmd, args)
			if err != nil {
				return err
			}
			for _, m := range request.Messages {
				if !m.Role.IsValid() {
					a.observer.Warn(cmd.Context(), "message role is not one of system, user, assistant",
						observability.String("role", string(m.Role)))
				}
			}

			c, err := a.newClient()
			if err != nil {
				return err
			}

			reply, err := c.Chat(cmd.Context(), request)
			if err != nil {
				return err
			}

			if f.markdown {
				if reply, err = htmltomarkdown.ConvertString(reply); err != nil {
					return fmt.Errorf("converting reply to markdown: %w", err)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.message, "message", "m", "", "Single free-form message.")
	flags.StringVar(&f.system, "system", "", "System prompt.")
	flags.StringVar(&f.user, "user", "", "User prompt.")
	flags.StringVar(&f.assistant, "assistant", "", "Prior assistant turn.")
	flags.StringVar(&f.messages, "messages", "", "JSON list of {role, content} objects, or @file.")
	flags.Float64Var(&f.temperature, "temperature", ai.DefaultTemperature, "Sampling temperature.")
	flags.IntVar(&f.maxTokens, "max-tokens", ai.DefaultMaxTokens, "Maximum completion tokens.")
	flags.DurationVar(&f.timeout, "timeout", ai.DefaultChatTimeout, "Timeout for the request.")
	flags.BoolVar(&f.markdown, "markdown", false, "Render an HTML reply as markdown.")

	return cmd
}

// request turns the flags into an ai.ChatRequest. Temperature and max tokens
// are only set when given explicitly so the library defaults stay in charge.
func (f *chatFlags) request(cmd *cobra.Command, args []string) (ai.ChatRequest, error) {
	request := ai.ChatRequest{
		Message:   f.message,
		System:    f.system,
		User:      f.user,
		Assistant: f.assistant,
		Timeout:   f.timeout,
	}
	if request.Message == "" && len(args) > 0 {
		request.Message = strings.Join(args, " ")
	}

	if f.messages != "" {
		raw := f.messages
		if path, ok := strings.CutPrefix(raw, "@"); ok {
			content, err := os.ReadFile(path)
			if err != nil {
				return ai.ChatRequest{}, fmt.Errorf("reading --messages file: %w", err)
			}
			raw = string(content)
		}

		messages, err := utils.ParseStringAs[[]ai.Message](raw)
		if err != nil {
			return ai.ChatRequest{}, fmt.Errorf("invalid --messages: %w", err)
		}
		request.Messages = messages
	}

	if cmd.Flags().Changed("temperature") {
		request.Temperature = utils.Ptr(f.temperature)
	}
	if cmd.Flags().Changed("max-tokens") {
		request.MaxTokens = utils.Ptr(f.maxTokens)
	}

	return request, nil
}
