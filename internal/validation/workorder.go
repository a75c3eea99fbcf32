package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// WorkOrderPrefix is the fixed prefix of every work-order code.
	WorkOrderPrefix = "1000"
	// workOrderLength is the number of digits of a work-order code.
	workOrderLength = 12
)

// WorkOrderResult is the outcome of ValidateWorkOrder.
type WorkOrderResult struct {
	// Valid is true when the code passed every check.
	Valid bool

	// Err wraps ErrFormat, ErrLength or ErrPrefix when Valid is false.
	Err error
}

// Message returns the error text, or "" for a valid code.
func (r WorkOrderResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ValidateWorkOrder checks a work-order (ODL) code.
// Whitespace is stripped first; the checks then run in order, stopping at
// the first failure: digits only, 12 digits, WorkOrderPrefix.
func ValidateWorkOrder(raw string) WorkOrderResult {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if !isDigits(stripped) {
		return WorkOrderResult{Err: fmt.Errorf("%w: work order must contain digits only", ErrFormat)}
	}
	if n := utf8.RuneCountInString(stripped); n != workOrderLength {
		return WorkOrderResult{Err: fmt.Errorf("%w: work order must have %d digits (entered: %d)", ErrLength, workOrderLength, n)}
	}
	if !strings.HasPrefix(stripped, WorkOrderPrefix) {
		return WorkOrderResult{Err: fmt.Errorf("%w: work order must start with %s", ErrPrefix, WorkOrderPrefix)}
	}
	return WorkOrderResult{Valid: true}
}
