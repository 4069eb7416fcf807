package billing

import (
	"fmt"
	"regexp"
	"strconv"
)

// HOA statements label their period with the Spanish month name, e.g.
// "OCTUBRE/2025".
var spanishMonths = [12]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

var numericPeriodLabel = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)

// FormatHoaPeriod formats an HOA period into its standardized Spanish
// label, e.g. FormatHoaPeriod(10, 2025) returns "OCTUBRE/2025". It returns
// "" when month or year are out of range.
func FormatHoaPeriod(month, year int) string {
	if year <= 0 {
		return ""
	}

	if month < 1 || month > 12 {
		return ""
	}

	return fmt.Sprintf("%s/%d", spanishMonths[month-1], year)
}

// EnsureSpanishPeriodLabel converts a numeric "MM/YYYY" label into the
// Spanish long form. Labels in any other format pass through unchanged,
// which makes the function idempotent.
func EnsureSpanishPeriodLabel(label string) string {
	match := numericPeriodLabel.FindStringSubmatch(label)
	if match == nil {
		return label
	}

	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])

	if formatted := FormatHoaPeriod(month, year); formatted != "" {
		return formatted
	}

	return label
}
