package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// vehicleNumberLength is the number of digits of a vehicle number including the check digit.
	vehicleNumberLength = 12
	// vehiclePayloadLength is the number of digits covered by the check digit.
	vehiclePayloadLength = 11
	// vehicleNumberSeparator separates the payload from the check digit in the canonical form.
	vehicleNumberSeparator = "-"
)

// VehicleNumberResult is the outcome of ValidateVehicleNumber.
type VehicleNumberResult struct {
	// Valid is true when the number passed every check.
	Valid bool

	// Err wraps ErrLength, ErrFormat or ErrChecksum when Valid is false.
	Err error

	// Formatted is the canonical "11digits-checkdigit" form. When the input
	// cannot be split into payload and check digit it is the raw input.
	Formatted string
}

// Message returns the error text, or "" for a valid number.
func (r VehicleNumberResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ComputeCheckDigit returns the EVN check digit of an 11-digit payload.
//
// Non-digit characters are ignored. Digits at even zero-based positions are
// doubled (minus 9 when the result exceeds 9), all digits are summed and the
// check digit is (10 - sum mod 10) mod 10. It returns ErrLength when the
// payload does not hold exactly 11 digits.
func ComputeCheckDigit(payload string) (int, error) {
	digits := make([]int, 0, vehiclePayloadLength)
	for _, r := range payload {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	if len(digits) != vehiclePayloadLength {
		return 0, fmt.Errorf("%w: payload must have %d digits (got %d)", ErrLength, vehiclePayloadLength, len(digits))
	}

	sum := 0
	for i, d := range digits {
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// ValidateVehicleNumber checks a 12-digit vehicle number.
// Spaces and dashes are stripped first; the checks then run in order:
// length, digits only, check digit.
func ValidateVehicleNumber(raw string) VehicleNumberResult {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, raw)

	if n := utf8.RuneCountInString(stripped); n != vehicleNumberLength {
		return VehicleNumberResult{
			Err:       fmt.Errorf("%w: vehicle number must have %d digits (entered: %d)", ErrLength, vehicleNumberLength, n),
			Formatted: raw,
		}
	}
	if !isDigits(stripped) {
		return VehicleNumberResult{
			Err:       fmt.Errorf("%w: vehicle number must contain digits only", ErrFormat),
			Formatted: raw,
		}
	}

	payload := stripped[:vehiclePayloadLength]
	entered := int(stripped[vehiclePayloadLength] - '0')
	formatted := payload + vehicleNumberSeparator + stripped[vehiclePayloadLength:]

	expected, err := ComputeCheckDigit(payload)
	if err != nil {
		return VehicleNumberResult{Err: err, Formatted: raw}
	}
	if entered != expected {
		return VehicleNumberResult{
			Err:       fmt.Errorf("%w: entered %d, expected %d", ErrChecksum, entered, expected),
			Formatted: formatted,
		}
	}

	return VehicleNumberResult{Valid: true, Formatted: formatted}
}

// isDigits reports whether s is non-empty and made of ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
