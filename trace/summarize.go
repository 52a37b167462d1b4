package trace

import (
	"regexp"
	"strings"
)

var (
	summaryNodeRe   = regexp.MustCompile(`^([A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*Error): (.*)$`)
	summarySimpleRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*): (.*)$`)
)

// summaryCap bounds the fallback summary when the text has no non-blank line.
const summaryCap = 200

// Summarize reduces an arbitrary trace string to its leading diagnostic
// line. Unlike ParseStderr it requires no traceback marker or call stack:
// it inspects only the first non-blank line, trying the exception-header
// form first and the bare "<Kind>: <message>" form second. Text matching
// neither comes back verbatim with no distinguished kind; text with no
// non-blank line at all comes back capped at 200 characters.
func Summarize(text string) Summary {
	line := firstNonBlankLine(text)
	if line == "" {
		if len(text) > summaryCap {
			text = text[:summaryCap]
		}
		return Summary{Message: text}
	}
	if m := summaryNodeRe.FindStringSubmatch(line); m != nil {
		return Summary{Kind: m[1], Message: m[2]}
	}
	if m := summarySimpleRe.FindStringSubmatch(line); m != nil {
		return Summary{Kind: m[1], Message: m[2]}
	}
	return Summary{Message: line}
}

func firstNonBlankLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
