package pdfform

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
)

// Note box limits.
const (
	// NoteMaxLines is the number of lines the notes box holds.
	NoteMaxLines = 4
	// NoteLineWidth is the number of characters that fit on a notes line.
	NoteLineWidth = 90
)

// NotesField is the text field that receives the wrapped notes.
const NotesField = "Text59"

// Field is one text field of the template.
type Field struct {
	// Name is the form field name ("Text1").
	Name string
	// Page is the one-based page the field sits on.
	Page int
	// Label describes the field for humans.
	Label string
	// Value is the text to stamp; an empty value clears the field.
	Value string
}

// Mark is a glyph drawn at fixed coordinates (PDF points, origin bottom-left).
type Mark struct {
	Page int
	X    float64
	Y    float64
	Size float64
	Text string
}

// Outcome mark positions on page 2.
var (
	positiveMark = Mark{Page: 2, X: 108, Y: 128, Size: 14, Text: "X"}
	negativeMark = Mark{Page: 2, X: 251, Y: 128, Size: 14, Text: "X"}
)

// Form is the resolved content of a report.
type Form struct {
	// Title is the type label printed in the header ("6 MESI").
	Title string
	// Outcome is the verification result.
	Outcome model.Outcome
	// Fields lists every template field in form order.
	Fields []Field
	// Notes are the wrapped note lines for NotesField.
	Notes []string
	// OutcomeMark is nil when no outcome has been chosen.
	OutcomeMark *Mark
}

// Value returns the value of a field, or "" when the form has no such field.
func (f Form) Value(name string) string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

// Renderer stamps a resolved form onto the template and returns the document bytes.
type Renderer interface {
	Render(ctx context.Context, template []byte, form Form) ([]byte, error)
}

// Build resolves the form of a vehicle.
func Build(op model.Operator, inst model.Instruments, site model.Site, v model.Vehicle) Form {
	d := v.Data
	b := &builder{}

	b.add(1, "Text1", "Site", site.Name)
	b.add(1, "Text2", "Vehicle number", v.Number)
	b.add(1, "Text3", "Verification type", v.Type.Label())
	b.add(1, "Text27", "ODL", site.WorkOrder)

	b.add(1, "Text4", "Multimeter ID", inst.MultimeterID)
	b.add(1, "Text5", "Multimeter expiry", validation.FormatDate(inst.MultimeterExpiry))

	p1, p2 := d.Packs[0], d.Packs[1]
	b.add(1, "Text7", "Pack 1 production date", p1.ProductionDate)
	b.add(1, "Text8", "Pack 1 manufacturer", p1.Manufacturer)
	b.add(1, "Text9", "S/N 1", p1.Serials[0])
	b.add(1, "Text10", "S/N 2", p1.Serials[1])
	b.add(1, "Text13", "Pack 2 production date", p2.ProductionDate)
	b.add(1, "Text14", "Pack 2 manufacturer", p2.Manufacturer)
	b.add(1, "Text11", "S/N 3", p2.Serials[0])
	b.add(1, "Text12", "S/N 4", p2.Serials[1])

	// Checkpoints fill three consecutive fields each, from Text15.
	for i, cp := range model.Checkpoints {
		r := d.Reading(cp)
		n := 15 + 3*i
		b.add(1, textField(n), cp.String()+" V multimeter", r.MultimeterVoltage)
		b.add(1, textField(n+1), cp.String()+" V vehicle", r.VehicleVoltage)
		current := r.VehicleCurrent
		if cp != model.CheckpointID2 {
			current = dischargeCurrent(current)
		}
		b.add(1, textField(n+2), cp.String()+" I vehicle", current)
	}

	b.add(2, "Text28", "Densitometer ID", inst.DensitometerID)
	b.add(2, "Text29", "Densitometer expiry", validation.FormatDate(inst.DensitometerExpiry))
	for pack := 1; pack <= model.PackCount; pack++ {
		first := 30 + (pack-1)*model.ElementsPerPack
		for element := 1; element <= model.ElementsPerPack; element++ {
			b.add(2, textField(first+element-1), fmt.Sprintf("Density pack %d element %d", pack, element), d.DensityValue(pack, element))
		}
	}

	b.add(2, "Text56", "Operator name", op.Name)
	b.add(2, "Text57", "CID", op.CID)
	b.add(2, "Text58", "Date", validation.FormatDate(op.Date))

	notes := WrapNotes(d.Notes, NoteLineWidth, NoteMaxLines)
	b.add(2, NotesField, "Notes", strings.Join(notes, "\n"))

	form := Form{
		Title:   v.Type.Label(),
		Outcome: d.Outcome,
		Fields:  b.fields,
		Notes:   notes,
	}
	switch d.Outcome {
	case model.OutcomePositive:
		m := positiveMark
		form.OutcomeMark = &m
	case model.OutcomeNegative:
		m := negativeMark
		form.OutcomeMark = &m
	}
	return form
}

type builder struct {
	fields []Field
}

func (b *builder) add(page int, name, label, value string) {
	b.fields = append(b.fields, Field{Name: name, Page: page, Label: label, Value: strings.TrimSpace(value)})
}

func textField(n int) string {
	return fmt.Sprintf("Text%d", n)
}

// dischargeCurrent prints a discharge current with a leading minus sign,
// whether or not the operator typed one.
func dischargeCurrent(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.Replace("-"+value, "--", "-", 1)
}

// WrapNotes splits text into at most maxLines lines of at most width
// characters, breaking at spaces. A word longer than width gets a line of its
// own. Whatever does not fit in maxLines is dropped.
func WrapNotes(text string, width, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if len([]rune(candidate)) > width && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
