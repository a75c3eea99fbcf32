package report

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs history and checks as Markdown for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// WriteHistory writes the history as a table.
func (w *MarkdownWriter) WriteHistory(entries []HistoryEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Report history")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No reports in history.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	unshared := 0
	for i, e := range entries {
		if !e.Shared {
			unshared++
		}
		rows[i] = []string{
			e.VehicleNumber,
			e.TypeLabel,
			e.OperatorDate,
			e.SiteName,
			"`" + e.Filename + "`",
			humanize.Bytes(uint64(max(e.Size, 0))),
			sharedText(e.Shared),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Vehicle", "Type", "Date", "Site", "File", "Size", "Shared"},
		Rows:   rows,
	})
	md.PlainText("")

	if unshared > 0 {
		md.Importantf("%d report(s) not shared yet.", unshared)
	} else {
		md.Tip("Every report has been shared.")
	}
	return len(md.String()), md.Build()
}

// WriteCheck writes the check with an alert summarizing the status.
func (w *MarkdownWriter) WriteCheck(check *Check) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Vehicle " + check.VehicleNumber)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Type", check.TypeLabel},
			{"Site", check.SiteName},
			{"Missing fields", strconv.Itoa(len(check.Missing))},
			{"Report generated", sharedText(check.Generated)},
		},
	})
	md.PlainText("")

	switch {
	case check.NumberError != "":
		md.Cautionf("Vehicle number: %s", check.NumberError)
	case len(check.Errors) > 0:
		md.Cautionf("%d blocking error(s).", len(check.Errors))
	case len(check.Missing) > 0:
		md.Warningf("%d required field(s) missing.", len(check.Missing))
	default:
		md.Tip("Ready to generate.")
	}
	md.PlainText("")

	writeList(md, "Missing fields", check.Missing)
	writeList(md, "Errors", check.Errors)
	writeList(md, "Warnings", check.Warnings)

	return len(md.String()), md.Build()
}

func writeList(md *markdown.Markdown, title string, items []string) {
	if len(items) == 0 {
		return
	}
	md.H2(title)
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}
