package runner

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Render produces the deterministic human-readable report for a result.
// It is a pure function of the result and the configured output budget.
func (r *Runner) Render(res *Result) string {
	var b strings.Builder

	// A Caser carries internal state, so build one per call.
	title := cases.Title(language.English)
	fmt.Fprintf(&b, "%s run %s\n", title.String(string(res.Runtime)), res.ID)
	if res.Probe {
		b.WriteString("Mode: version probe (no entry file)\n")
	}
	fmt.Fprintf(&b, "Command: %s\n", res.CommandLine)
	fmt.Fprintf(&b, "Working directory: %s\n", res.Dir)

	if res.ExitCode != nil {
		fmt.Fprintf(&b, "Exit status: %d", *res.ExitCode)
	} else {
		b.WriteString("Exit status: none")
	}
	if res.TimedOut {
		b.WriteString(" (timed out)")
	}
	b.WriteString("\n")

	if res.Trace != nil {
		fmt.Fprintf(&b, "Error: %s: %s\n", res.Trace.Kind, res.Trace.Message)
		if res.Trace.File != "" {
			loc := fmt.Sprintf("%s:%d", res.Trace.File, res.Trace.Line)
			if res.Trace.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, res.Trace.Column)
			}
			fmt.Fprintf(&b, "Location: %s\n", loc)
		}
	}

	fmt.Fprintf(&b, "\n--- stdout ---\n%s\n", truncate(res.Stdout, r.cfg.MaxOutputBytes))
	fmt.Fprintf(&b, "\n--- stderr ---\n%s\n", truncate(res.Stderr, r.cfg.MaxOutputBytes))

	return b.String()
}

// truncate keeps the head of s within budget and appends an explicit
// marker naming the dropped byte count. Bodies at or under the budget
// come back verbatim.
func truncate(s string, budget int) string {
	if len(s) <= budget {
		return s
	}
	return fmt.Sprintf("%s\n... [truncated %d bytes]", s[:budget], len(s)-budget)
}
