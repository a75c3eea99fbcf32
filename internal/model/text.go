package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace, collapses inner runs of
// whitespace and NFC-normalizes free text typed on mobile keyboards, so that
// "Città" typed with a combining accent and a precomposed one compare equal.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
