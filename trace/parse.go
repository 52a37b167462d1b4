package trace

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// nodeAnchorRe matches the exception header: a dotted identifier path
	// ending in "Error", a colon, the message, and at least one trailing
	// line holding the call stack. Multiline mode so the header may sit
	// anywhere in the text; the first anchor wins and nested or causal
	// errors below it are not distinguished.
	nodeAnchorRe = regexp.MustCompile(`(?m)^([A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*Error): (.*)\r?\n([\s\S]+)`)

	// nodeFrameRe matches a Unix-style absolute path with line and column.
	// The leading separator is required: relative and Windows-style paths
	// are deliberately not recognized as error sites.
	nodeFrameRe = regexp.MustCompile(`(/[^\s:()]+):(\d+):(\d+)`)

	// pyFrameRe matches one traceback frame's file and line.
	pyFrameRe = regexp.MustCompile(`File "([^"]+)", line (\d+)`)

	// pyTailRe matches the closing "<Kind>: <message>" line of a
	// traceback. The identifier is simple, never dotted.
	pyTailRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*): (.*)$`)
)

const pythonMarker = "Traceback (most recent call last):"

// ParseStderr maps raw child-process stderr to a structured Record,
// dispatching on the first recognized diagnostic convention: node-style
// exception headers are tried first, python tracebacks second. A nil
// return means no recognized diagnostic, which covers empty input, plain
// program output, and crash signatures from other runtimes; it does not
// mean the program succeeded.
func ParseStderr(stderr string) *Record {
	if stderr == "" {
		return nil
	}

	if m := nodeAnchorRe.FindStringSubmatch(stderr); m != nil && strings.TrimSpace(m[3]) != "" {
		rec := &Record{
			Family:  FamilyNode,
			Kind:    m[1],
			Message: m[2],
			Raw:     m[3],
		}
		// Only the stack below the header is searched, so a path-like
		// substring inside the message can never win. First frame with an
		// absolute path is the error site.
		if f := nodeFrameRe.FindStringSubmatch(m[3]); f != nil {
			rec.File = f[1]
			rec.Line, _ = strconv.Atoi(f[2])
			rec.Column, _ = strconv.Atoi(f[3])
		}
		return rec
	}

	if strings.Contains(stderr, pythonMarker) {
		rec := &Record{Family: FamilyPython, Kind: "Error", Raw: stderr}
		// Frames run outer to inner; the last File line is the actual site.
		if frames := pyFrameRe.FindAllStringSubmatch(stderr, -1); frames != nil {
			last := frames[len(frames)-1]
			rec.File = last[1]
			rec.Line, _ = strconv.Atoi(last[2])
		}
		if tail := lastNonBlankLine(stderr); tail != "" {
			if m := pyTailRe.FindStringSubmatch(tail); m != nil {
				rec.Kind, rec.Message = m[1], m[2]
			} else {
				rec.Message = tail
			}
		}
		return rec
	}

	return nil
}

// lastNonBlankLine walks the text bottom-up, skipping trailing newlines
// and whitespace-only lines. Empty string means the text had no content.
func lastNonBlankLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}
