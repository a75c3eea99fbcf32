package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/pdfform"
	"github.com/nao1215/markdown"
)

// SheetRenderer renders a form as a Markdown verification sheet: one table
// per template page, the notes and the outcome boxes. It does not need a
// template; when one is given its size is recorded in the footer.
type SheetRenderer struct{}

var _ pdfform.Renderer = SheetRenderer{}

// Render writes the sheet.
func (SheetRenderer) Render(ctx context.Context, template []byte, form pdfform.Form) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H1("Battery efficiency verification: " + form.Title)
	md.PlainText("")

	for page := 1; page <= 2; page++ {
		md.H2(fmt.Sprintf("Page %d", page))
		md.PlainText("")

		var rows [][]string
		for _, f := range form.Fields {
			if f.Page != page || f.Name == pdfform.NotesField {
				continue
			}
			value := f.Value
			if value == "" {
				value = "-"
			}
			rows = append(rows, []string{f.Label, value})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Field", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.H2("Notes")
	md.PlainText("")
	if len(form.Notes) == 0 {
		md.PlainText("-")
	}
	for _, line := range form.Notes {
		md.PlainText(line)
	}
	md.PlainText("")

	md.H2("Outcome")
	md.PlainText("")
	md.PlainText(outcomeBox(form.Outcome, model.OutcomePositive) + "  " + outcomeBox(form.Outcome, model.OutcomeNegative))
	md.PlainText("")

	md.HorizontalRule()
	md.PlainText("")
	if len(template) > 0 {
		md.PlainTextf("*Form template: %s*", humanize.Bytes(uint64(len(template))))
	} else {
		md.PlainText("*Rendered without form template*")
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("failed to build verification sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func outcomeBox(got, box model.Outcome) string {
	if got == box {
		return "[X] " + string(box)
	}
	return "[ ] " + string(box)
}
