// Package server binds the debug tools into an MCP server and drives the
// stdio serve lifecycle.
//
// Two tools are exposed:
//
//   - debug: run an entry program under node or python and report the
//     captured outcome, including a structured error extracted from the
//     stack trace and resource links to the files involved.
//
//   - debug_suggest_fix: summarize an already-captured stack trace into a
//     one-line diagnosis plus candidate files to edit.
//
// Tool-failure policy: only invocation-setup problems (missing entry,
// spawn failure), a non-zero exit, or a timeout mark the debug tool result
// as an error. A parse miss or an unrecognized trace never does, and
// debug_suggest_fix never fails at all.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/debugmcp/runner"
)

// Options configures a Server.
type Options struct {
	// Runner executes debug requests. Required.
	Runner *runner.Runner

	// Logger is optional; nil discards logs.
	Logger *slog.Logger

	// Version is the advertised server version. Default: "dev".
	Version string
}

// Server owns the long-lived MCP server and its transport connection.
// It is constructed once at startup and torn down when the transport
// closes; tool invocations share no mutable state.
type Server struct {
	mcp    *mcp.Server
	runner *runner.Runner
	log    *slog.Logger
}

// New creates a Server with both tools registered.
func New(opts Options) (*Server, error) {
	if opts.Runner == nil {
		return nil, fmt.Errorf("server: Runner is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		runner: opts.Runner,
		log:    opts.Logger,
	}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: "debugmcp", Version: opts.Version},
		nil,
	)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "debug",
		Description: "Run an entry program under node or python and capture its outcome: " +
			"exit status, stdout/stderr, and a structured error extracted from the stack trace. " +
			"Omit entry to probe that the runtime itself is reachable.",
		InputSchema: debugInputSchema,
	}, s.handleDebug)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "debug_suggest_fix",
		Description: "Summarize a captured stack trace into a short diagnostic " +
			"plus candidate files to edit.",
	}, s.handleSuggestFix)

	return s, nil
}

// Run serves the tools over stdio until the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve runs the server on an arbitrary transport. Tests use it with
// in-memory transports.
func (s *Server) Serve(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}
