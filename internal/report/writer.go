package report

import (
	"io"

	"github.com/nao1215/effbatt/internal/model"
)

// HistoryEntry is a report as listed in the history, with the size of its document.
type HistoryEntry struct {
	model.Report
	Size int64 `json:"size"`
}

// Writer prints history listings and vehicle checks.
type Writer interface {
	// WriteHistory prints the reports in the given order.
	WriteHistory(entries []HistoryEntry) (int, error)

	// WriteCheck prints the result of checking one vehicle.
	WriteCheck(check *Check) (int, error)
}

// MultiWriter writes to multiple Writers in turn and stops at the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteHistory prints the history with every Writer.
func (m *MultiWriter) WriteHistory(entries []HistoryEntry) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteHistory(entries)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteCheck prints the check with every Writer.
func (m *MultiWriter) WriteCheck(check *Check) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteCheck(check)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sharedText is the history column value of the shared flag.
func sharedText(shared bool) string {
	if shared {
		return "yes"
	}
	return "no"
}
