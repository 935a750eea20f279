package main

import (
	"errors"
	"os"

	"github.com/mycelian/calculator-mcp/internal/config"
	"github.com/mycelian/calculator-mcp/internal/logger"
	"github.com/mycelian/calculator-mcp/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errReported marks failures whose message was already written for the user.
var errReported = errors.New("reported")

type serveFlags struct {
	transport string
	logLevel  string
	httpPort  int
}

func newRootCmd() *cobra.Command {
	var flags serveFlags

	rootCmd := &cobra.Command{
		Use:           "calculator-mcp",
		Short:         "MCP server exposing exact decimal summation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.transport, "transport", "", "Transport: auto|stdio|http (overrides CALCULATOR_TRANSPORT)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides CALCULATOR_LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&flags.httpPort, "http-port", 0, "HTTP port (overrides CALCULATOR_HTTP_PORT)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the MCP server (default command)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd, flags)
			},
		},
		newSumCmd(),
		newToolsCmd(),
	)
	return rootCmd
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command, flags serveFlags) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport = config.Transport(flags.transport)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("http-port") {
		cfg.HTTPPort = flags.httpPort
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogger sends logs to stderr; stdout belongs to the stdio transport.
func initLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level())
	l := logger.New(cfg.ServerName, os.Stderr).Level(cfg.Level())
	log.Logger = l.With().Caller().Logger()
	return l
}

func runServe(cmd *cobra.Command, flags serveFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	l := initLogger(cfg)

	if err := mcp.RunMCPServer(cmd.Context(), cfg, l); err != nil {
		l.Error().Stack().Err(err).Msg("MCP server exited with error")
		return errReported
	}
	return nil
}
