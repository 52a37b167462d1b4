package trace

import "testing"

func TestParseStderr_Node(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   Record
	}{
		{
			name:   "property access crash",
			stderr: "TypeError: Cannot read properties of undefined\n    at Object.<anonymous> (/tmp/app.js:12:5)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "TypeError",
				Message: "Cannot read properties of undefined",
				File:    "/tmp/app.js",
				Line:    12,
				Column:  5,
			},
		},
		{
			name:   "namespaced error class",
			stderr: "util.CustomError: nope\n    at run (/srv/worker.js:8:11)\n    at main (/srv/index.js:2:3)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "util.CustomError",
				Message: "nope",
				File:    "/srv/worker.js",
				Line:    8,
				Column:  11,
			},
		},
		{
			name:   "first frame with absolute path wins",
			stderr: "RangeError: out of range\n    at <anonymous>\n    at check (/a/b.js:3:9)\n    at main (/a/c.js:1:1)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "RangeError",
				Message: "out of range",
				File:    "/a/b.js",
				Line:    3,
				Column:  9,
			},
		},
		{
			name:   "no absolute path in stack leaves location unset",
			stderr: "SyntaxError: unexpected token\n    at new Promise (<anonymous>)\n    at processTicksAndRejections (node:internal:77:11)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "SyntaxError",
				Message: "unexpected token",
			},
		},
		{
			name:   "path-like text in the message does not become the location",
			stderr: "TypeError: cannot open /etc/app.conf:1:2 for writing\n    at open (/srv/io.js:44:13)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "TypeError",
				Message: "cannot open /etc/app.conf:1:2 for writing",
				File:    "/srv/io.js",
				Line:    44,
				Column:  13,
			},
		},
		{
			name:   "program output before the header is ignored",
			stderr: "warn: check /var/log/app.log:9:9\nEvalError: bad eval\n    at f (/opt/x.js:2:4)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "EvalError",
				Message: "bad eval",
				File:    "/opt/x.js",
				Line:    2,
				Column:  4,
			},
		},
		{
			name:   "first anchor wins over a later one",
			stderr: "TypeError: outer\n    at a (/x/a.js:1:2)\nRangeError: inner\n    at b (/x/b.js:3:4)",
			want: Record{
				Family:  FamilyNode,
				Kind:    "TypeError",
				Message: "outer",
				File:    "/x/a.js",
				Line:    1,
				Column:  2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStderr(tt.stderr)
			if got == nil {
				t.Fatalf("ParseStderr(%q) = nil, want record", tt.stderr)
			}
			assertRecord(t, got, tt.want)
		})
	}
}

func TestParseStderr_Python(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   Record
	}{
		{
			name:   "division by zero",
			stderr: "Traceback (most recent call last):\n  File \"/tmp/app.py\", line 3, in <module>\n    x = 1/0\nZeroDivisionError: division by zero",
			want: Record{
				Family:  FamilyPython,
				Kind:    "ZeroDivisionError",
				Message: "division by zero",
				File:    "/tmp/app.py",
				Line:    3,
			},
		},
		{
			name: "last frame is the error site",
			stderr: "Traceback (most recent call last):\n" +
				"  File \"/tmp/app.py\", line 11, in <module>\n    divide(10, 0)\n" +
				"  File \"/tmp/app.py\", line 7, in divide\n    raise ValueError(\"Division by zero!\")\n" +
				"ValueError: Division by zero!",
			want: Record{
				Family:  FamilyPython,
				Kind:    "ValueError",
				Message: "Division by zero!",
				File:    "/tmp/app.py",
				Line:    7,
			},
		},
		{
			name:   "trailing blank lines are skipped",
			stderr: "Traceback (most recent call last):\n  File \"/srv/job.py\", line 2, in <module>\nKeyError: 'missing'\n\n   \n",
			want: Record{
				Family:  FamilyPython,
				Kind:    "KeyError",
				Message: "'missing'",
				File:    "/srv/job.py",
				Line:    2,
			},
		},
		{
			name:   "unparsable tail falls back to Error with verbatim message",
			stderr: "Traceback (most recent call last):\n  File \"/srv/job.py\", line 9, in <module>\nKeyboardInterrupt",
			want: Record{
				Family:  FamilyPython,
				Kind:    "Error",
				Message: "KeyboardInterrupt",
				File:    "/srv/job.py",
				Line:    9,
			},
		},
		{
			name:   "dotted tail identifier does not match the simple form",
			stderr: "Traceback (most recent call last):\n  File \"/srv/net.py\", line 4, in <module>\nsocket.gaierror: [Errno -2] Name or service not known",
			want: Record{
				Family:  FamilyPython,
				Kind:    "Error",
				Message: "socket.gaierror: [Errno -2] Name or service not known",
				File:    "/srv/net.py",
				Line:    4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStderr(tt.stderr)
			if got == nil {
				t.Fatalf("ParseStderr(%q) = nil, want record", tt.stderr)
			}
			assertRecord(t, got, tt.want)
			if got.Column != 0 {
				t.Errorf("Column = %d, want 0 for python diagnostics", got.Column)
			}
		})
	}
}

func TestParseStderr_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
	}{
		{name: "empty input", stderr: ""},
		{name: "plain text with no markers", stderr: "plain text with no markers"},
		{name: "non-zero exit without a crash signature", stderr: "error: something went wrong\nexit status 1"},
		{name: "header with no stack below it", stderr: "TypeError: boom"},
		{name: "go panic is not a recognized family", stderr: "panic: runtime error: index out of range [3]\n\ngoroutine 1 [running]:\nmain.main()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStderr(tt.stderr); got != nil {
				t.Errorf("ParseStderr(%q) = %+v, want nil", tt.stderr, got)
			}
		})
	}
}

func TestParseStderr_Idempotent(t *testing.T) {
	stderr := "Traceback (most recent call last):\n  File \"/tmp/app.py\", line 3, in <module>\nValueError: bad"
	first := ParseStderr(stderr)
	second := ParseStderr(stderr)
	if first == nil || second == nil {
		t.Fatal("expected records from both calls")
	}
	if *first != *second {
		t.Errorf("records differ across calls: %+v vs %+v", *first, *second)
	}
}

func assertRecord(t *testing.T, got *Record, want Record) {
	t.Helper()
	if got.Family != want.Family {
		t.Errorf("Family = %q, want %q", got.Family, want.Family)
	}
	if got.Kind != want.Kind {
		t.Errorf("Kind = %q, want %q", got.Kind, want.Kind)
	}
	if got.Message != want.Message {
		t.Errorf("Message = %q, want %q", got.Message, want.Message)
	}
	if got.File != want.File {
		t.Errorf("File = %q, want %q", got.File, want.File)
	}
	if got.Line != want.Line {
		t.Errorf("Line = %d, want %d", got.Line, want.Line)
	}
	if got.Column != want.Column {
		t.Errorf("Column = %d, want %d", got.Column, want.Column)
	}
	if got.Raw == "" {
		t.Error("Raw is empty, want the captured trace text")
	}
}
