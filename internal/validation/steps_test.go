package validation

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/effbatt/internal/model"
)

func TestSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		vt   model.VerificationType
		want []Step
	}{
		{vt: model.VerificationThreeMonth, want: []Step{StepBatteries, StepMeasurements, StepOutcome}},
		{vt: model.VerificationSixMonth, want: []Step{StepBatteries, StepDensity, StepOutcome}},
		{vt: model.VerificationBoth, want: []Step{StepBatteries, StepMeasurements, StepDensity, StepOutcome}},
	}
	for _, tt := range tests {
		if got := Steps(tt.vt); !slices.Equal(got, tt.want) {
			t.Errorf("Steps(%s): expected %v, got %v", tt.vt, tt.want, got)
		}
	}
}

func TestParseStep(t *testing.T) {
	t.Parallel()

	if got, err := ParseStep(" Density "); err != nil || got != StepDensity {
		t.Errorf("expected density, got %q (%v)", got, err)
	}
	if _, err := ParseStep("review"); !errors.Is(err, ErrUnknownStep) {
		t.Errorf("expected ErrUnknownStep, got %v", err)
	}
}

func TestCheckStep(t *testing.T) {
	t.Parallel()

	t.Run("measurement warnings block", func(t *testing.T) {
		t.Parallel()

		d := completeVehicle(model.VerificationThreeMonth).Data
		d.Readings[model.CheckpointID6].MultimeterVoltage = "18"

		err := CheckStep(StepMeasurements, d)
		var stepErr *StepError
		if !errors.As(err, &stepErr) || !errors.Is(err, ErrStepBlocked) {
			t.Fatalf("expected StepError, got %v", err)
		}
		if stepErr.Step != StepMeasurements || len(stepErr.Messages) != 1 {
			t.Errorf("unexpected step error %+v", stepErr)
		}
	})

	t.Run("range errors reported before spread", func(t *testing.T) {
		t.Parallel()

		d := completeVehicle(model.VerificationSixMonth).Data
		d.SetDensityValue(1, 1, "1.02")
		d.SetDensityValue(1, 2, "1.45")

		var stepErr *StepError
		if err := CheckStep(StepDensity, d); !errors.As(err, &stepErr) {
			t.Fatalf("expected StepError, got %v", err)
		}
		if len(stepErr.Messages) != 1 || !strings.HasPrefix(stepErr.Messages[0], "pack 1, element 2: ") {
			t.Errorf("expected only the range error, got %v", stepErr.Messages)
		}
	})

	t.Run("spread blocks once readings are in range", func(t *testing.T) {
		t.Parallel()

		d := completeVehicle(model.VerificationSixMonth).Data
		d.SetDensityValue(2, 11, "1.05")
		d.SetDensityValue(2, 12, "1.40")

		var stepErr *StepError
		if err := CheckStep(StepDensity, d); !errors.As(err, &stepErr) {
			t.Fatalf("expected StepError, got %v", err)
		}
		if len(stepErr.Messages) != 1 || !strings.Contains(stepErr.Messages[0], "pack 2") {
			t.Errorf("expected the pack 2 spread warning, got %v", stepErr.Messages)
		}
	})

	t.Run("clean data passes every step", func(t *testing.T) {
		t.Parallel()

		d := completeVehicle(model.VerificationBoth).Data
		for _, step := range Steps(model.VerificationBoth) {
			if err := CheckStep(step, d); err != nil {
				t.Errorf("step %s: unexpected error %v", step, err)
			}
		}
	})

	t.Run("unknown step", func(t *testing.T) {
		t.Parallel()

		if err := CheckStep(Step("review"), model.MeasurementData{}); !errors.Is(err, ErrUnknownStep) {
			t.Errorf("expected ErrUnknownStep, got %v", err)
		}
	})
}

func TestCheckGeneration(t *testing.T) {
	t.Parallel()

	t.Run("missing fields first", func(t *testing.T) {
		t.Parallel()

		inst := testInstruments()
		inst.MultimeterExpiry = "2020-01-01"
		v := completeVehicle(model.VerificationThreeMonth)
		v.Data.Outcome = model.OutcomeNone

		err := CheckGeneration(testOperator(), inst, testSite(), v)
		var missing *MissingFieldsError
		if !errors.As(err, &missing) {
			t.Fatalf("expected MissingFieldsError, got %v", err)
		}
		if !slices.Equal(missing.Fields, []string{"Outcome"}) {
			t.Errorf("unexpected fields %v", missing.Fields)
		}
	})

	t.Run("expired instrument", func(t *testing.T) {
		t.Parallel()

		inst := testInstruments()
		inst.DensitometerExpiry = "2025-06-01"

		err := CheckGeneration(testOperator(), inst, testSite(), completeVehicle(model.VerificationSixMonth))
		if !errors.Is(err, ErrInstrumentExpired) {
			t.Fatalf("expected ErrInstrumentExpired, got %v", err)
		}
		if err := CheckGeneration(testOperator(), inst, testSite(), completeVehicle(model.VerificationThreeMonth)); err != nil {
			t.Errorf("expected densitometer to be ignored for three-month, got %v", err)
		}
	})

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		if err := CheckGeneration(testOperator(), testInstruments(), testSite(), completeVehicle(model.VerificationBoth)); err != nil {
			t.Errorf("unexpected error %v", err)
		}
	})
}
