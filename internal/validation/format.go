package validation

import "strings"

// isoLayout is the layout of stored dates.
const isoLayout = "2006-01-02"

// FormatDate rewrites an ISO date (YYYY-MM-DD) as DD/MM/YYYY.
// Anything that does not split into three dash-separated parts is returned unchanged.
func FormatDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormatProductionDate normalizes a battery production date as typed into MM/YYYY:
// non-digits are dropped, at most six digits are kept and a slash is inserted
// after the month once more than two digits are present.
func FormatProductionDate(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 6 {
		digits = digits[:6]
	}
	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}
