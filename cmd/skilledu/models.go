package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skilledu/skilledu-go/providers/ai"
)

type modelsOutput struct {
	Models []string `json:"models" yaml:"models"`
}

func newModelsCmd(a *app) *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models offered by the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}

			models, err := c.ListModels(cmd.Context(), timeout)
			if err != nil {
				return err
			}
			return writeModels(cmd.OutOrStdout(), models, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml.")
	cmd.Flags().DurationVar(&timeout, "timeout", ai.DefaultListModelsTimeout, "Timeout for the request.")

	return cmd
}

func writeModels(w io.Writer, models []string, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		for _, m := range models {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(modelsOutput{Models: models})
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(modelsOutput{Models: models}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
