package validation

import (
	"errors"
	"testing"
)

func TestValidateWorkOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantValid bool
		wantErr   error
	}{
		{name: "valid", raw: "100012345678", wantValid: true},
		{name: "valid with spaces", raw: " 1000 1234 5678 ", wantValid: true},
		{name: "wrong prefix", raw: "200012345678", wantErr: ErrPrefix},
		{name: "too short", raw: "1000123", wantErr: ErrLength},
		{name: "too long", raw: "1000123456789", wantErr: ErrLength},
		{name: "letters", raw: "1000ABCD5678", wantErr: ErrFormat},
		{name: "format checked before length", raw: "10-0", wantErr: ErrFormat},
		{name: "length checked before prefix", raw: "2000", wantErr: ErrLength},
		{name: "empty", raw: "", wantErr: ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ValidateWorkOrder(tt.raw)
			if got.Valid != tt.wantValid {
				t.Errorf("expected valid=%v, got %v (%s)", tt.wantValid, got.Valid, got.Message())
			}
			if tt.wantErr != nil && !errors.Is(got.Err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, got.Err)
			}
		})
	}
}
