package billing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFold decomposes to NFD and strips combining marks so that
// accented provider names ("Cablevisión") match plain-ASCII keywords.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeSearchValue(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))

	folded, _, err := transform.String(diacriticFold, lowered)
	if err != nil {
		return lowered
	}

	return folded
}

// Classify resolves a bill category from the provider id, the raw category
// string from extraction or user input, and the detected provider name.
// Empty strings mark absent values. It is a total function: the result is
// always a member of the category set, with CategoryOther as fallback.
//
// Resolution order is correctness-critical: the exact providerId hint is
// the most specific signal, a raw category that already is a category value
// is trusted next, and keyword matching only runs after both miss.
func Classify(providerID, rawCategory, providerName string) Category {
	if providerID != "" {
		if hint, ok := hintIndex.byID[providerID]; ok {
			return hint.Category
		}
	}

	normalizedCategory := normalizeSearchValue(rawCategory)

	// "service"/"services" predate the category set and map to other.
	if normalizedCategory == "service" || normalizedCategory == "services" {
		return CategoryOther
	}

	if candidate := Category(normalizedCategory); candidate.Valid() {
		return candidate
	}

	searchValues := make([]string, 0, 3)
	for _, value := range []string{providerID, providerName, rawCategory} {
		if normalized := normalizeSearchValue(value); normalized != "" {
			searchValues = append(searchValues, normalized)
		}
	}

	for _, entry := range hintIndex.ordered {
		for _, keyword := range entry.keywords {
			for _, search := range searchValues {
				if strings.Contains(search, keyword) {
					return entry.hint.Category
				}
			}
		}
	}

	return CategoryOther
}
