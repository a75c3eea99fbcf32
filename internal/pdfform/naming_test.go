package pdfform

import (
	"testing"

	"github.com/nao1215/effbatt/internal/model"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  model.VerificationType
		want string
	}{
		{name: "three month", typ: model.VerificationThreeMonth, want: "50832187605-6 3Mesi 10-06-2025.pdf"},
		{name: "six month", typ: model.VerificationSixMonth, want: "50832187605-6 6Mesi 10-06-2025.pdf"},
		{name: "both", typ: model.VerificationBoth, want: "50832187605-6 6Mesi 10-06-2025.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := model.NewVehicle("50832187605-6", tt.typ)
			if got := Filename(v, "2025-06-10"); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportID(t *testing.T) {
	t.Parallel()

	v := model.NewVehicle("50832187605-6", model.VerificationBoth)
	if got, want := ReportID(v, "2025-06-10"), "50832187605-6_3M6M_2025-06-10"; got != want {
		t.Errorf("ReportID() = %q, want %q", got, want)
	}
	if ReportID(v, "2025-06-10") != ReportID(v, "2025-06-10") {
		t.Error("ReportID is not deterministic")
	}
	if ReportID(v, "2025-06-10") == ReportID(v.WithType(model.VerificationSixMonth), "2025-06-10") {
		t.Error("ReportID does not depend on the verification type")
	}
}
