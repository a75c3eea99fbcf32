package validation

import "testing"

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-06-10", want: "10/06/2025"},
		{in: "2025-06", want: "2025-06"},
		{in: "10/06/2025", want: "10/06/2025"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatProductionDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "03", want: "03"},
		{in: "032", want: "03/2"},
		{in: "032022", want: "03/2022"},
		{in: "03/2022", want: "03/2022"},
		{in: "03-20221999", want: "03/2022"},
		{in: "ab", want: ""},
	}
	for _, tt := range tests {
		if got := FormatProductionDate(tt.in); got != tt.want {
			t.Errorf("FormatProductionDate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
		if again := FormatProductionDate(FormatProductionDate(tt.in)); again != tt.want {
			t.Errorf("FormatProductionDate is not idempotent on %q: got %q", tt.in, again)
		}
	}
}
