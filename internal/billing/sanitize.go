package billing

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseResult is the strictly-typed result of a bill extraction. Every
// field is either a validated value or nil.
type ParseResult struct {
	Text                 *string          `json:"text"`
	ProviderID           *string          `json:"providerId"`
	ProviderNameDetected *string          `json:"providerNameDetected"`
	Category             *string          `json:"category"`
	TotalAmount          *decimal.Decimal `json:"totalAmount"`
	Currency             *string          `json:"currency"`
	IssueDate            *string          `json:"issueDate"`
	DueDate              *string          `json:"dueDate"`
	PeriodStart          *string          `json:"periodStart"`
	PeriodEnd            *string          `json:"periodEnd"`
	HoaDetails           *HoaDetails      `json:"hoaDetails"`
}

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.,-]+`)
	// A lone dot with a three-digit group reads as thousands grouping in
	// es-AR bills ("1.234" is one thousand two hundred thirty-four).
	thousandsDotPattern = regexp.MustCompile(`^-?\d{1,3}\.\d{3}$`)
)

// SanitizeParseResult coerces an arbitrary decoded JSON value into a
// ParseResult. It is total: malformed or missing fields degrade to nil
// without affecting the remaining fields.
func SanitizeParseResult(value any) ParseResult {
	data, _ := value.(map[string]any)

	return ParseResult{
		Text:                 SanitizeString(data["text"]),
		ProviderID:           SanitizeString(data["providerId"]),
		ProviderNameDetected: SanitizeString(data["providerNameDetected"]),
		Category:             SanitizeString(data["category"]),
		TotalAmount:          SanitizeNumber(data["totalAmount"]),
		Currency:             SanitizeString(data["currency"]),
		IssueDate:            SanitizeString(data["issueDate"]),
		DueDate:              SanitizeString(data["dueDate"]),
		PeriodStart:          SanitizeString(data["periodStart"]),
		PeriodEnd:            SanitizeString(data["periodEnd"]),
		HoaDetails:           SanitizeHoaDetails(data["hoaDetails"]),
	}
}

// SanitizeString trims a string value. Non-strings and empty strings
// sanitize to nil.
func SanitizeString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// SanitizeNumber coerces a numeric or numeric-like string value into a
// decimal. Locale-formatted strings are handled by treating the rightmost
// of comma and dot as the decimal separator and a repeated separator as
// thousands grouping. Unparseable input sanitizes to nil.
func SanitizeNumber(value any) *decimal.Decimal {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		d := decimal.NewFromFloat(v)
		return &d
	case int:
		d := decimal.NewFromInt(int64(v))
		return &d
	case int64:
		d := decimal.NewFromInt(v)
		return &d
	case decimal.Decimal:
		return &v
	case string:
		return sanitizeNumericString(v)
	default:
		return nil
	}
}

func sanitizeNumericString(value string) *decimal.Decimal {
	numeric := nonNumericPattern.ReplaceAllString(strings.TrimSpace(value), "")
	if numeric == "" {
		return nil
	}

	commaCount := strings.Count(numeric, ",")
	dotCount := strings.Count(numeric, ".")
	normalized := numeric

	switch {
	case commaCount > 0 && dotCount > 0:
		if strings.LastIndex(numeric, ",") > strings.LastIndex(numeric, ".") {
			normalized = strings.ReplaceAll(numeric, ".", "")
			normalized = strings.ReplaceAll(normalized, ",", ".")
		} else {
			normalized = strings.ReplaceAll(numeric, ",", "")
		}
	case commaCount == 1:
		normalized = strings.ReplaceAll(numeric, ",", ".")
	case commaCount > 1:
		normalized = strings.ReplaceAll(numeric, ",", "")
	case dotCount > 1:
		normalized = strings.ReplaceAll(numeric, ".", "")
	case dotCount == 1 && thousandsDotPattern.MatchString(numeric):
		normalized = strings.ReplaceAll(numeric, ".", "")
	}

	parsed, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil
	}

	return &parsed
}

// SanitizeInteger sanitizes a numeric value and rounds it to the nearest
// integer. Unparseable input sanitizes to nil.
func SanitizeInteger(value any) *int {
	numeric := SanitizeNumber(value)
	if numeric == nil {
		return nil
	}

	rounded := int(numeric.Round(0).IntPart())
	return &rounded
}

// SanitizeHoaDetails sanitizes a nested HOA details value. Non-object input
// sanitizes to nil; every leaf field is sanitized independently so a single
// malformed sub-field never invalidates the whole object.
func SanitizeHoaDetails(value any) *HoaDetails {
	details, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	return &HoaDetails{
		BuildingCode:          SanitizeString(details["buildingCode"]),
		BuildingAddress:       SanitizeString(details["buildingAddress"]),
		UnitCode:              SanitizeString(details["unitCode"]),
		UnitLabel:             SanitizeString(details["unitLabel"]),
		OwnerName:             SanitizeString(details["ownerName"]),
		PeriodLabel:           SanitizeString(details["periodLabel"]),
		PeriodKey:             SanitizeString(details["periodKey"]),
		PeriodYear:            SanitizeInteger(details["periodYear"]),
		PeriodMonth:           SanitizeInteger(details["periodMonth"]),
		FirstDueAmount:        SanitizeNumber(details["firstDueAmount"]),
		SecondDueAmount:       SanitizeNumber(details["secondDueAmount"]),
		TotalBuildingExpenses: SanitizeNumber(details["totalBuildingExpenses"]),
		TotalToPayUnit:        SanitizeNumber(details["totalToPayUnit"]),
		Rubros:                sanitizeRubros(details["rubros"]),
	}
}

func sanitizeRubros(value any) []Rubro {
	items, ok := value.([]any)
	if !ok {
		return []Rubro{}
	}

	rubros := make([]Rubro, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			rubros = append(rubros, Rubro{})
			continue
		}

		rubros = append(rubros, Rubro{
			RubroNumber: SanitizeInteger(entry["rubroNumber"]),
			Label:       SanitizeString(entry["label"]),
			Total:       SanitizeNumber(entry["total"]),
		})
	}

	return rubros
}
