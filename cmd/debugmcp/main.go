// Command debugmcp runs the debug MCP server over stdio.
//
// The server exposes two tools to an AI coding assistant: debug, which
// runs an entry program under node or python and reports its captured
// outcome, and debug_suggest_fix, which summarizes a stack trace into a
// short diagnostic. Logs go to stderr; stdout carries the protocol.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/debugmcp/config"
	"github.com/jonwraymond/debugmcp/runner"
	"github.com/jonwraymond/debugmcp/server"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "debugmcp",
	Short: "MCP server that runs node/python programs and extracts structured errors",
	Long: `debugmcp serves two tools over MCP stdio:

  debug              run an entry program under node or python and capture
                     its outcome, including a structured error extracted
                     from the stack trace
  debug_suggest_fix  summarize a captured stack trace into a short
                     diagnostic plus candidate files to edit`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"path to a YAML config file (default: $DEBUGMCP_CONFIG, then ./debugmcp.yaml)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error (overrides config)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	r := runner.New(runner.Config{
		NodeBin:        cfg.Runtimes.NodeBin,
		PythonBin:      cfg.Runtimes.PythonBin,
		DefaultTimeout: cfg.DefaultTimeout(),
		MaxOutputBytes: cfg.Execution.MaxOutputBytes,
		Logger:         logger,
	})

	srv, err := server.New(server.Options{
		Runner:  r,
		Logger:  logger,
		Version: version,
	})
	if err != nil {
		return err
	}

	logger.Info("debugmcp serving on stdio", "version", version)
	return srv.Run(context.Background())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "debugmcp:", err)
		os.Exit(1)
	}
}
