package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/debugmcp/runner"
	"github.com/jonwraymond/debugmcp/trace"
)

type debugInput struct {
	Language  string   `json:"language"`
	Entry     string   `json:"entry,omitempty"`
	Args      []string `json:"args,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
	TimeoutMs int      `json:"timeoutMs,omitempty"`
}

// debugInputSchema constrains the debug tool's input at the protocol
// layer; in particular, language is an enum over the two supported
// runtimes. The handler re-checks language so a lax client still gets a
// clean failure.
var debugInputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"language": map[string]any{
			"type":        "string",
			"enum":        []string{"node", "python"},
			"description": "Runtime to execute under",
		},
		"entry": map[string]any{
			"type":        "string",
			"description": "Path to the entry program; omit for a bare runtime version probe",
		},
		"args": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Arguments passed to the entry program, in order",
		},
		"cwd": map[string]any{
			"type":        "string",
			"description": "Working directory for the child process",
		},
		"timeoutMs": map[string]any{
			"type":        "integer",
			"minimum":     1,
			"description": "Execution timeout in milliseconds (default 15000)",
		},
	},
	"required": []string{"language"},
}

type suggestFixInput struct {
	Stack     string   `json:"stack" jsonschema_description:"Raw stack trace or error output to summarize"`
	FileHints []string `json:"fileHints,omitempty" jsonschema_description:"Paths the caller already suspects are involved"`
}

// fixInstruction closes every debug_suggest_fix report.
const fixInstruction = "Open the most relevant file, find the failing line, and apply the " +
	"smallest change that addresses the root cause. Re-run the debug tool to confirm the fix."

func (s *Server) handleDebug(ctx context.Context, req *mcp.CallToolRequest, in debugInput) (*mcp.CallToolResult, struct{}, error) {
	var rt runner.Runtime
	switch in.Language {
	case "node":
		rt = runner.RuntimeNode
	case "python":
		rt = runner.RuntimePython
	default:
		return errorResult(fmt.Sprintf("unsupported language %q (want node or python)", in.Language)), struct{}{}, nil
	}

	r := runner.Request{
		Runtime: rt,
		Entry:   in.Entry,
		Args:    in.Args,
		Dir:     in.Cwd,
	}
	if in.TimeoutMs > 0 {
		r.Timeout = time.Duration(in.TimeoutMs) * time.Millisecond
	}

	res, err := s.runner.Execute(ctx, r)
	if err != nil {
		// Setup and spawn failures mean nothing ran; report them as a
		// tool-level failure with no result payload.
		s.log.Warn("debug invocation failed", "error", err)
		return errorResult(err.Error()), struct{}{}, nil
	}

	payload, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, struct{}{}, fmt.Errorf("marshaling result: %w", err)
	}

	content := []mcp.Content{
		&mcp.TextContent{Text: s.runner.Render(res)},
		&mcp.TextContent{Text: string(payload)},
	}
	content = append(content, resourceLinks(res)...)

	return &mcp.CallToolResult{
		Content: content,
		// A failing program run is a successful tool invocation, but a
		// non-zero exit or a kill by timeout still marks the result.
		IsError: !res.OK(),
	}, struct{}{}, nil
}

func (s *Server) handleSuggestFix(ctx context.Context, req *mcp.CallToolRequest, in suggestFixInput) (*mcp.CallToolResult, struct{}, error) {
	sum := trace.Summarize(in.Stack)

	var b strings.Builder
	fmt.Fprintf(&b, "Diagnosis: %s\n", sum)
	if len(in.FileHints) > 0 {
		b.WriteString("\nCandidate files:\n")
		for _, hint := range in.FileHints {
			fmt.Fprintf(&b, "- %s\n", hint)
		}
	}
	b.WriteString("\n")
	b.WriteString(fixInstruction)

	content := []mcp.Content{&mcp.TextContent{Text: b.String()}}
	for _, hint := range in.FileHints {
		abs, err := filepath.Abs(hint)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			content = append(content, fileLink(abs, "candidate file to edit"))
		}
	}

	// Summarization never fails; unparsable traces come back verbatim.
	return &mcp.CallToolResult{Content: content}, struct{}{}, nil
}

// resourceLinks returns typed pointers to the entry file and the file
// implicated by the extracted error, so a caller can fetch their content
// separately.
func resourceLinks(res *runner.Result) []mcp.Content {
	var links []mcp.Content
	if res.Entry != "" {
		links = append(links, fileLink(res.Entry, "entry program"))
	}
	if res.Trace != nil && res.Trace.File != "" && res.Trace.File != res.Entry {
		links = append(links, fileLink(res.Trace.File, "file implicated by the error"))
	}
	return links
}

func fileLink(path, desc string) *mcp.ResourceLink {
	link := &mcp.ResourceLink{
		URI:         "file://" + path,
		Name:        filepath.Base(path),
		Description: desc,
	}
	if mime := mimeByExtension(path); mime != "" {
		link.MIMEType = mime
	}
	return link
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
