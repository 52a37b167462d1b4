// Package trace extracts structured error records from raw runtime
// diagnostic text.
//
// Two diagnostic conventions are recognized:
//
//   - Node (V8): a "<Kind>Error: <message>" header line followed by one or
//     more call-stack lines, each frame optionally carrying an
//     "/abs/path:line:column" location.
//
//   - Python (CPython): a "Traceback (most recent call last):" marker,
//     repeated `File "<path>", line <N>` frames ordered outer to inner,
//     and a closing "<Kind>: <message>" line.
//
// [ParseStderr] dispatches on the first recognized convention and maps the
// text to a [Record]. [Summarize] is a deliberately more lenient companion
// that reduces an already-extracted trace to a one-line [Summary].
//
// # Heuristics, not guarantees
//
// Both functions are regular-expression heuristics over free-form text.
// They carry no confidence score and may silently mis-parse wrapped,
// interleaved, or multi-runtime output. The ordering choices are
// deliberate and behavior-bearing: the node header search takes the first
// anchor in the text, the node location search takes the first absolute
// path in the stack below that anchor, and the python frame search takes
// the last File line because tracebacks list frames outer to inner.
package trace
