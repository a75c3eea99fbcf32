package pdfform

import (
	"strings"

	"github.com/nao1215/effbatt/internal/model"
	"github.com/nao1215/effbatt/internal/validation"
)

// Filename returns the document name "<number> <3Mesi|6Mesi> <dd-mm-yyyy>.pdf".
// Every type that includes the six-month check is named 6Mesi.
func Filename(v model.Vehicle, operatorDate string) string {
	kind := "6Mesi"
	if v.Type == model.VerificationThreeMonth {
		kind = "3Mesi"
	}
	date := strings.ReplaceAll(validation.FormatDate(operatorDate), "/", "-")
	return v.Number + " " + kind + " " + date + ".pdf"
}

// ReportID returns "<number>_<type>_<date>", the history key of a report.
// Generating the same vehicle, type and date again yields the same ID.
func ReportID(v model.Vehicle, operatorDate string) string {
	return v.Number + "_" + v.Type.String() + "_" + operatorDate
}
