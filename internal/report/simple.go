package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// SimpleWriter prints plain text for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the document hash and work order to history lines.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteHistory prints one line per report.
func (w *SimpleWriter) WriteHistory(entries []HistoryEntry) (int, error) {
	var sb strings.Builder

	if len(entries) == 0 {
		sb.WriteString("No reports in history.\n")
		return w.output.Write([]byte(sb.String()))
	}

	unshared := 0
	for _, e := range entries {
		if !e.Shared {
			unshared++
		}
		sb.WriteString(fmt.Sprintf("%-32s %-7s %s  %-10s %8s  shared: %s  (%s)\n",
			e.VehicleNumber,
			e.TypeLabel,
			e.OperatorDate,
			e.SiteName,
			humanize.Bytes(uint64(max(e.Size, 0))),
			sharedText(e.Shared),
			humanize.Time(e.CreatedAt),
		))
		if w.verbose {
			sb.WriteString(fmt.Sprintf("    id: %s  file: %s  hash: %s\n", e.ID, e.Filename, e.DocumentHash))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d report(s), %d not shared\n", len(entries), unshared))

	return w.output.Write([]byte(sb.String()))
}

// WriteCheck prints the check sections that carry entries.
func (w *SimpleWriter) WriteCheck(check *Check) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Vehicle %s  %s  site %s\n", check.VehicleNumber, check.TypeLabel, check.SiteName))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	if check.NumberError != "" {
		sb.WriteString(fmt.Sprintf("Vehicle number: %s\n", check.NumberError))
	}
	writeSection(&sb, "Missing fields", check.Missing)
	writeSection(&sb, "Errors", check.Errors)
	writeSection(&sb, "Warnings", check.Warnings)

	switch {
	case check.Ready():
		sb.WriteString("Status: ready to generate\n")
	default:
		sb.WriteString("Status: not ready\n")
	}
	if check.Generated {
		sb.WriteString("Report already generated\n")
	}
	return w.output.Write([]byte(sb.String()))
}

func writeSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", title, len(lines)))
	for _, line := range lines {
		sb.WriteString("  - ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
