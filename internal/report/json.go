package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs history and checks as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// historyDocument is the JSON shape of a history listing.
type historyDocument struct {
	Count    int            `json:"count"`
	Unshared int            `json:"unshared"`
	Reports  []HistoryEntry `json:"reports"`
}

// WriteHistory outputs the listing with its counters.
func (w *JSONWriter) WriteHistory(entries []HistoryEntry) (int, error) {
	doc := historyDocument{Count: len(entries), Reports: entries}
	if doc.Reports == nil {
		doc.Reports = []HistoryEntry{}
	}
	for _, e := range entries {
		if !e.Shared {
			doc.Unshared++
		}
	}
	return w.writeJSON(doc)
}

// checkDocument adds the derived ready flag to a check.
type checkDocument struct {
	*Check
	Ready bool `json:"ready"`
}

// WriteCheck outputs the check.
func (w *JSONWriter) WriteCheck(check *Check) (int, error) {
	return w.writeJSON(checkDocument{Check: check, Ready: check.Ready()})
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
