package trace

// Family identifies the diagnostic convention a record was extracted from.
type Family string

const (
	// FamilyNode is the V8 exception convention: a "<Kind>Error: <message>"
	// header line followed by stack frames carrying "/path:line:column"
	// locations.
	FamilyNode Family = "node"

	// FamilyPython is the CPython traceback convention: a fixed marker
	// line, File/line frames ordered outer to inner, and a closing
	// "<Kind>: <message>" line.
	FamilyPython Family = "python"
)

// Record is the structured extraction of a single runtime diagnostic.
// It is derived entirely from captured stderr text and is valid only for
// the invocation that produced it.
type Record struct {
	// Family is the diagnostic convention the record was extracted from.
	Family Family `json:"family"`

	// Kind is the error class name, e.g. "TypeError" or "ValueError".
	Kind string `json:"kind"`

	// Message is the human-readable error text from the header line.
	Message string `json:"message"`

	// File is the originating source file, when a location was found.
	File string `json:"file,omitempty"`

	// Line is the 1-based line number at the error site.
	// Zero means unknown.
	Line int `json:"line,omitempty"`

	// Column is the 1-based column at the error site. Only node
	// diagnostics carry columns; zero means unknown.
	Column int `json:"column,omitempty"`

	// Raw is the unprocessed trace text the record was extracted from.
	Raw string `json:"raw"`
}

// Summary is a one-line synopsis of a stack trace. An empty Kind means
// the text matched neither diagnostic form and Message holds it verbatim.
type Summary struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// String renders the summary as "Kind: message", or just the message when
// no kind was distinguished.
func (s Summary) String() string {
	if s.Kind == "" {
		return s.Message
	}
	return s.Kind + ": " + s.Message
}
