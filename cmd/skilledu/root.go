package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skilledu/skilledu-go/core/client"
	"github.com/skilledu/skilledu-go/core/client/middleware"
	"github.com/skilledu/skilledu-go/providers/ai/gateway"
	"github.com/skilledu/skilledu-go/providers/observability"
	"github.com/skilledu/skilledu-go/providers/observability/otelobs"
	"github.com/skilledu/skilledu-go/providers/observability/slogobs"
)

const (
	envPrefix = "SKILLEDU"

	keyConfig       = "config"
	keyGatewayURL   = "gateway_url"
	keyLogLevel     = "log_level"
	keyLogFormat    = "log_format"
	keyModel        = "model"
	keyRequestLog   = "request_log"
	keyCallDeadline = "call_deadline"
	keyObserver     = "observer"
)

// app holds the state shared by every subcommand. Each root command gets its
// own viper instance so tests can build independent command trees.
type app struct {
	v        *viper.Viper
	logger   *slog.Logger
	observer observability.Provider
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "skilledu",
		Short:        "Skilled.U AI gateway client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file path (optional).")
	flags.String("url", gateway.DefaultBaseURL, "Gateway endpoint.")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn or error.")
	flags.String("log-format", "text", "Log format: text or json.")
	flags.String("model", "", "Model used when a request does not name one.")
	flags.String("request-log", "off", "Per-call request logging: off, minimal, standard or verbose.")
	flags.Duration("call-deadline", 0, "Upper bound for every gateway call; 0 disables it.")
	flags.String("observer", "slog", "Observability backend: slog, or otel to use the global OpenTelemetry providers.")

	for key, flag := range map[string]string{
		keyConfig:       "config",
		keyGatewayURL:   "url",
		keyLogLevel:     "log-level",
		keyLogFormat:    "log-format",
		keyModel:        "model",
		keyRequestLog:   "request-log",
		keyCallDeadline: "call-deadline",
		keyObserver:     "observer",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	cmd.AddCommand(newModelsCmd(a))
	cmd.AddCommand(newChatCmd(a))
	cmd.AddCommand(newDemoCmd(a))

	return cmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if cfgFile := strings.TrimSpace(a.v.GetString(keyConfig)); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	slogObserver := slogobs.New(
		slogobs.WithFormat(slogobs.ParseFormat(a.v.GetString(keyLogFormat))),
		slogobs.WithLevel(slogobs.ParseLogLevel(a.v.GetString(keyLogLevel))),
		slogobs.WithOutput(cmd.ErrOrStderr()),
	)
	a.logger = slogObserver.Logger()

	switch backend := strings.ToLower(strings.TrimSpace(a.v.GetString(keyObserver))); backend {
	case "", "slog":
		a.observer = slogObserver
	case "otel":
		a.observer = otelobs.New(otelobs.WithLogger(a.logger))
	default:
		return fmt.Errorf("unknown observer: %s", backend)
	}
	return nil
}

// newClient wires the gateway, the observer and the optional middlewares
// selected by configuration.
func (a *app) newClient() (*client.Client, error) {
	gw, err := gateway.New(a.v.GetString(keyGatewayURL))
	if err != nil {
		return nil, err
	}

	opts := []client.Option{
		client.WithObserver(a.observer),
		client.WithDefaultModel(a.v.GetString(keyModel)),
	}

	if deadline := a.v.GetDuration(keyCallDeadline); deadline > 0 {
		opts = append(opts, client.WithMiddleware(middleware.NewTimeoutMiddleware(deadline)))
	}

	level, enabled, err := parseRequestLog(a.v.GetString(keyRequestLog))
	if err != nil {
		return nil, err
	}
	if enabled {
		opts = append(opts, client.WithMiddleware(middleware.NewLoggingMiddleware(a.logger, level)))
	}

	return client.New(gw, opts...)
}

func parseRequestLog(s string) (middleware.LogLevel, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return 0, false, nil
	case "minimal":
		return middleware.LogLevelMinimal, true, nil
	case "standard":
		return middleware.LogLevelStandard, true, nil
	case "verbose":
		return middleware.LogLevelVerbose, true, nil
	default:
		return 0, false, fmt.Errorf("unknown request_log: %s", s)
	}
}
