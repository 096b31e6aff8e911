// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adrixdax/FMProKit2/internal/config"
	"github.com/adrixdax/FMProKit2/internal/output"
	"github.com/adrixdax/FMProKit2/pkg/fmodata"
)

var (
	cfgFile  string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *fmodata.Client
	registry *prometheus.Registry
)

var rootCmd = &cobra.Command{
	Use:   "fmprokit",
	Short: "Query and administer FileMaker Server databases over OData",
	Long: `fmprokit talks to the OData API of FileMaker Server.

Connection settings come from flags, FMPRO_* environment variables (a .env file in
the working directory is loaded first) or a YAML config file.

Examples:
  fmprokit --host fms.example.com --database Contacts tables
  fmprokit get Person --where "status eq 2" --orderby firstName --top 5
  FMPRO_USE_TOKEN=true fmprokit record Person 'B1C30563-2232-422E-946D-2D3DFE5CFE74'
  fmprokit script Archive --param '{"year":2023}'`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: finalizeApp,
}

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.String("host", "", "FileMaker Server host (FMPRO_HOST)")
	flags.String("database", "", "database name (FMPRO_DATABASE)")
	flags.String("version", "vLatest", "OData version: v1, v2, v4 or vLatest (FMPRO_VERSION)")
	flags.String("scheme", "https", "URL scheme (FMPRO_SCHEME)")
	flags.String("base-path", "fmi/odata", "path prefix before the version segment")
	flags.Duration("timeout", 30*time.Second, "HTTP timeout")
	flags.StringP("username", "u", "", "account name (FMPRO_USERNAME)")
	flags.StringP("password", "p", "", "account password (FMPRO_PASSWORD)")
	flags.Bool("use-token", false, "open a session and authenticate with its token")
	flags.StringP("output", "o", "json", "output format: json, csv or table")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "console", "log format: console or json")
	flags.BoolP("verbose", "v", false, "log every request (same as --log-level debug)")

	rootCmd.AddCommand(
		tablesCmd,
		getCmd,
		recordCmd,
		fieldCmd,
		containerCmd,
		countCmd,
		queryCmd,
		deleteCmd,
		metadataCmd,
		scriptCmd,
		tokenCmd,
	)
}

// initializeApp loads the configuration, then builds the logger and the client.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg)

	registry = prometheus.NewRegistry()
	metrics := fmodata.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	client = fmodata.New(cfg.Host, fmodata.Version(cfg.Version), cfg.Database,
		fmodata.WithScheme(cfg.Scheme),
		fmodata.WithBasePath(cfg.BasePath),
		fmodata.WithTimeout(cfg.Timeout),
		fmodata.WithUserAgent(cfg.UserAgent),
		fmodata.WithLogger(logger),
		fmodata.WithMetrics(metrics),
	)
	if cfg.HasBasicAuth() {
		client.SetBasicAuthCredentials(cfg.Username, cfg.Password)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Bool("basic_auth", cfg.HasBasicAuth()).
		Bool("use_token", cfg.UseToken).
		Msg("Client configured")

	if cfg.UseToken && cmd != tokenCmd {
		if _, err := client.FetchToken(cmd.Context()); err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}
		logger.Debug().Msg("Session opened")
	}
	return nil
}

// finalizeApp closes the session opened by initializeApp and reports request counts.
func finalizeApp(cmd *cobra.Command, args []string) error {
	if client != nil && client.AuthState() == fmodata.Authenticated && cmd != tokenCmd {
		if err := client.Logout(context.WithoutCancel(cmd.Context())); err != nil {
			logger.Warn().Err(err).Msg("Failed to close session")
		}
	}
	logMetrics()
	return nil
}

func logMetrics() {
	if registry == nil || logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	families, err := registry.Gather()
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to gather metrics")
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			event := logger.Debug().Str("metric", mf.GetName())
			for _, lp := range m.GetLabel() {
				event = event.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				event = event.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				event = event.
					Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum", m.GetHistogram().GetSampleSum())
			}
			event.Msg("Request metrics")
		}
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	if cfg.LogFormat == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd),
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func formatter() (output.Formatter, error) {
	return output.New(cfg.Output, os.Stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
