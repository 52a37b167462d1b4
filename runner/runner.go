// Package runner resolves, spawns, and observes entry-program executions.
//
// A Runner turns a [Request] into a [Result]: it resolves the working
// directory and entry path, spawns the configured interpreter bounded by a
// timeout, collects stdout/stderr and the exit status, and extracts a
// structured error record from stderr via the trace package. A failing
// program is ordinary data; only setup and spawn problems are returned as
// errors.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/xid"

	"github.com/jonwraymond/debugmcp/trace"
)

// Runtime selects the interpreter used to run an entry program.
type Runtime string

// Supported runtimes.
const (
	RuntimeNode   Runtime = "node"
	RuntimePython Runtime = "python"
)

// Sentinel errors for invocation-setup failures. Program failures
// (non-zero exit, crash, timeout) are not errors; they are carried in the
// Result.
var (
	// ErrEntryNotFound indicates the requested entry file does not exist.
	// No child process is spawned.
	ErrEntryNotFound = errors.New("entry file not found")

	// ErrSpawn indicates the child process could not be started at all,
	// for example because the interpreter binary is missing.
	ErrSpawn = errors.New("spawn failed")
)

// Request describes a single program execution.
type Request struct {
	// Runtime selects the interpreter.
	Runtime Runtime

	// Entry is the program to run. Relative paths resolve against Dir.
	// Empty means a bare version probe of the interpreter, which lets a
	// caller verify the runtime is reachable without a target program.
	Entry string

	// Args are passed to the entry program, in order.
	Args []string

	// Dir is the working directory. Empty means the process working
	// directory of the server.
	Dir string

	// Timeout bounds the child process. Zero applies the config default.
	Timeout time.Duration
}

// Result is the captured outcome of one execution. It is immutable once
// produced and scoped to a single invocation.
type Result struct {
	// ID uniquely identifies this invocation in logs and payloads.
	ID string `json:"id"`

	Runtime Runtime `json:"runtime"`

	// CommandLine is the spawned command, space-joined for display.
	CommandLine string `json:"commandLine"`

	// Dir is the resolved working directory the child ran in.
	Dir string `json:"workingDirectory"`

	// Entry is the resolved absolute entry path; empty for a probe run.
	Entry string `json:"entry,omitempty"`

	// Probe is true when no entry was given and the interpreter was
	// invoked as a bare version probe.
	Probe bool `json:"probe,omitempty"`

	// ExitCode is absent when the process was killed before exiting,
	// which in practice means the timeout fired.
	ExitCode *int `json:"exitCode,omitempty"`

	TimedOut bool `json:"timedOut"`

	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	DurationMs int64 `json:"durationMs"`

	// Trace is the structured error extracted from stderr; absent when no
	// recognized diagnostic pattern matched.
	Trace *trace.Record `json:"error,omitempty"`
}

// OK reports whether the program ran to completion with exit code zero.
func (r *Result) OK() bool {
	return r.ExitCode != nil && *r.ExitCode == 0
}

// Runner executes entry programs under configured interpreters. It holds
// no mutable state and is safe for concurrent use.
type Runner struct {
	cfg Config
}

// New creates a Runner, applying defaults for unset config fields.
func New(cfg Config) *Runner {
	cfg.applyDefaults()
	return &Runner{cfg: cfg}
}

// Execute runs one request to completion and returns its captured
// outcome. A non-zero exit, a recognized crash, or a timeout all produce
// a Result, not an error; ErrEntryNotFound and ErrSpawn are the only
// failure modes.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	id := xid.New().String()

	dir := req.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	bin := r.binFor(req.Runtime)
	var argv []string
	var entry string
	probe := false
	if req.Entry != "" {
		entry = req.Entry
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		if _, statErr := os.Stat(entry); statErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
		}
		argv = append([]string{entry}, req.Args...)
	} else {
		probe = true
		argv = []string{"--version"}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.cfg.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, argv...)
	cmd.Dir = dir
	cmd.Env = childEnv()
	// Own process group so the timeout kill takes the whole tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start).Milliseconds()

	res := &Result{
		ID:          id,
		Runtime:     req.Runtime,
		CommandLine: strings.Join(append([]string{bin}, argv...), " "),
		Dir:         dir,
		Entry:       entry,
		Probe:       probe,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		DurationMs:  duration,
	}

	switch {
	case runErr == nil:
		code := 0
		res.ExitCode = &code
	case ctx.Err() == context.DeadlineExceeded:
		// Killed by the timeout; the child has no meaningful exit code.
		res.TimedOut = true
	default:
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("%w: %v", ErrSpawn, runErr)
		}
		code := exitErr.ExitCode()
		res.ExitCode = &code
	}

	res.Trace = trace.ParseStderr(res.Stderr)

	r.cfg.Logger.Info("program executed",
		"id", res.ID,
		"runtime", res.Runtime,
		"command", res.CommandLine,
		"exitCode", exitCodeAttr(res),
		"timedOut", res.TimedOut,
		"durationMs", res.DurationMs,
		"errorKind", errorKindAttr(res),
	)

	return res, nil
}

func (r *Runner) binFor(rt Runtime) string {
	if rt == RuntimePython {
		return r.cfg.PythonBin
	}
	return r.cfg.NodeBin
}

// childEnv returns the parent environment forced non-interactive and
// unbuffered so captured output is deterministic.
func childEnv() []string {
	return append(os.Environ(),
		"NO_COLOR=1",
		"FORCE_COLOR=0",
		"NODE_DISABLE_COLORS=1",
		"PYTHONUNBUFFERED=1",
		"TERM=dumb",
	)
}

func exitCodeAttr(res *Result) any {
	if res.ExitCode == nil {
		return "none"
	}
	return *res.ExitCode
}

func errorKindAttr(res *Result) string {
	if res.Trace == nil {
		return ""
	}
	return res.Trace.Kind
}
