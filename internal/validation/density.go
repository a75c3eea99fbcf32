package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/effbatt/internal/model"
)

const (
	// DensityMin is the lowest acceptable density reading in g/ml.
	DensityMin = 1.01
	// DensityMax is the highest acceptable density reading in g/ml.
	DensityMax = 1.40
	// MaxDensitySpread is the largest allowed max-min spread within a pack, in points (0.01 g/ml).
	MaxDensitySpread = 30

	// shorthandMin and shorthandMax bound the bare integer form of a reading ("125" for 1.25).
	shorthandMin = 101
	shorthandMax = 140
)

// DensityResult is the outcome of ValidateDensity.
type DensityResult struct {
	// Valid is true when the reading is a number within range.
	Valid bool

	// Err wraps ErrDensityMissing, ErrDensityParse or ErrDensityRange when Valid is false.
	Err error

	// Value is the parsed reading; meaningful when Parsed is true.
	Value float64

	// Parsed is true when the input was a number (valid or out of range).
	Parsed bool
}

// Message returns the error text, or "" for a valid reading.
func (r DensityResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ValidateDensity checks a single density reading as entered.
// A comma is accepted as decimal separator. The value is not normalized:
// "150" parses to 150 and fails the range check.
func ValidateDensity(value string) DensityResult {
	if strings.TrimSpace(value) == "" {
		return DensityResult{Err: ErrDensityMissing}
	}

	v, ok := parseNumber(value)
	if !ok {
		return DensityResult{Err: fmt.Errorf("%w: %q", ErrDensityParse, strings.TrimSpace(value))}
	}

	if v < DensityMin || v > DensityMax {
		return DensityResult{
			Err:    fmt.Errorf("%w (%s): must be between 1.01 and 1.40", ErrDensityRange, strconv.FormatFloat(v, 'f', -1, 64)),
			Value:  v,
			Parsed: true,
		}
	}

	return DensityResult{Valid: true, Value: v, Parsed: true}
}

// DensityPackErrors validates every non-empty reading of a pack (one-based)
// and returns one message per failing element, tagged with pack and element.
func DensityPackErrors(d model.MeasurementData, pack int) []string {
	var errs []string
	for element := 1; element <= model.ElementsPerPack; element++ {
		value := d.DensityValue(pack, element)
		if strings.TrimSpace(value) == "" {
			continue
		}
		if r := ValidateDensity(value); !r.Valid {
			errs = append(errs, fmt.Sprintf("pack %d, element %d: %s", pack, element, r.Message()))
		}
	}
	return errs
}

// DensityErrors returns DensityPackErrors for both packs, pack 1 first.
func DensityErrors(d model.MeasurementData) []string {
	var errs []string
	for pack := 1; pack <= model.PackCount; pack++ {
		errs = append(errs, DensityPackErrors(d, pack)...)
	}
	return errs
}

// DensityWarnings checks the spread between the highest and lowest reading
// of each pack. Readings are compared in points (see the package
// documentation); a pack with fewer than two numeric readings is skipped.
func DensityWarnings(d model.MeasurementData) []string {
	var warnings []string
	for pack := 1; pack <= model.PackCount; pack++ {
		var points []int
		for element := 1; element <= model.ElementsPerPack; element++ {
			if p, ok := densityPoints(d.DensityValue(pack, element)); ok {
				points = append(points, p)
			}
		}
		if len(points) < 2 {
			continue
		}
		lo, hi := points[0], points[0]
		for _, p := range points[1:] {
			lo = min(lo, p)
			hi = max(hi, p)
		}
		if hi-lo > MaxDensitySpread {
			warnings = append(warnings, fmt.Sprintf(
				"density spread in pack %d exceeds %d points (max %s, min %s)",
				pack, MaxDensitySpread, formatPoints(hi), formatPoints(lo)))
		}
	}
	return warnings
}

// NormalizeDensity rewrites the bare integer form of a reading ("120") as
// g/ml with two decimals ("1.20"). Values that already carry a decimal
// separator, or integers outside 101..140, are returned unchanged.
func NormalizeDensity(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.ContainsAny(trimmed, ".,") {
		return value
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < shorthandMin || n > shorthandMax {
		return value
	}
	return fmt.Sprintf("%d.%02d", n/100, n%100)
}

// FillDensity copies the normalized reading of element 1 of a pack into
// elements 2..12. Element 1 itself is left as entered. It returns the updated
// record and false when element 1 is empty (the record is then unchanged).
func FillDensity(d model.MeasurementData, pack int) (model.MeasurementData, bool) {
	first := d.DensityValue(pack, 1)
	if strings.TrimSpace(first) == "" {
		return d, false
	}
	value := NormalizeDensity(first)
	out := d.Clone()
	for element := 2; element <= model.ElementsPerPack; element++ {
		out.SetDensityValue(pack, element, value)
	}
	return out, true
}

// densityPoints converts a reading to hundredths of g/ml. Readings of 100 or
// more are taken to be in points already.
func densityPoints(value string) (int, bool) {
	v, ok := parseNumber(value)
	if !ok {
		return 0, false
	}
	if math.Abs(v) >= 100 {
		return int(math.Round(v)), true
	}
	return int(math.Round(v * 100)), true
}

// formatPoints renders points back as g/ml.
func formatPoints(p int) string {
	return strconv.FormatFloat(float64(p)/100, 'f', 2, 64)
}
