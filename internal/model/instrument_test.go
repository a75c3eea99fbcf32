package model

import (
	"errors"
	"testing"
)

func TestNewInstrumentTemplate(t *testing.T) {
	t.Parallel()

	t.Run("valid template gets an id", func(t *testing.T) {
		t.Parallel()

		tpl, err := NewInstrumentTemplate(InstrumentMultimeter, "  Fluke   spare ", " MM-01 ", "2027-01-31")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tpl.ID == "" {
			t.Error("expected a generated id")
		}
		if tpl.Label != "Fluke spare" || tpl.InstrumentID != "MM-01" {
			t.Errorf("unexpected template %+v", tpl)
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()

		a, _ := NewInstrumentTemplate(InstrumentDensitometer, "", "D1", "2027-01-01")
		b, _ := NewInstrumentTemplate(InstrumentDensitometer, "", "D1", "2027-01-01")
		if a.ID == b.ID {
			t.Error("expected distinct ids")
		}
	})

	t.Run("rejects missing values", func(t *testing.T) {
		t.Parallel()

		if _, err := NewInstrumentTemplate("scale", "", "X", "2027-01-01"); !errors.Is(err, ErrUnknownInstrumentKind) {
			t.Errorf("expected ErrUnknownInstrumentKind, got %v", err)
		}
		if _, err := NewInstrumentTemplate(InstrumentMultimeter, "", " ", "2027-01-01"); !errors.Is(err, ErrEmptyInstrumentID) {
			t.Errorf("expected ErrEmptyInstrumentID, got %v", err)
		}
		if _, err := NewInstrumentTemplate(InstrumentMultimeter, "", "X", ""); !errors.Is(err, ErrEmptyInstrumentExpiry) {
			t.Errorf("expected ErrEmptyInstrumentExpiry, got %v", err)
		}
	})
}

func TestInstruments_Apply(t *testing.T) {
	t.Parallel()

	live := Instruments{MultimeterID: "M0", MultimeterExpiry: "2026-01-01", DensitometerID: "D0", DensitometerExpiry: "2026-02-01"}
	got := live.Apply(InstrumentTemplate{Kind: InstrumentDensitometer, InstrumentID: "D9", Expiry: "2028-05-05"})

	if got.MultimeterID != "M0" || got.MultimeterExpiry != "2026-01-01" {
		t.Errorf("multimeter slot should be untouched, got %+v", got)
	}
	if got.DensitometerID != "D9" || got.DensitometerExpiry != "2028-05-05" {
		t.Errorf("densitometer slot not applied, got %+v", got)
	}
	if live.DensitometerID != "D0" {
		t.Error("Apply must not modify the receiver")
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	// "Città" with a combining grave accent vs the precomposed form.
	decomposed := "Citta\u0300"
	if got := NormalizeText("  " + decomposed + "   Nord "); got != "Città Nord" {
		t.Errorf("NormalizeText() = %q, want %q", got, "Città Nord")
	}
}
