// Package parse implements the billing parse pipeline: PDF text
// extraction, excerpt building and the structured OpenAI completion that
// yields sanitized billing fields.
package parse

import (
	"regexp"
	"strings"
)

// maxExcerptChars caps the prompt payload, bill PDFs routinely OCR into
// far more text than the model needs.
const maxExcerptChars = 8000

var moneyLinePattern = regexp.MustCompile(`(?i)(\$|total|importe|vencim|periodo|período)`)

// ExtractRelevantText builds the excerpt sent to the model: the first 60
// lines, every line mentioning amounts or due dates (deduplicated, in
// order) and the last 40 lines, capped at 8000 characters.
func ExtractRelevantText(fullText string) string {
	lines := toLines(fullText)

	firstLines := lines
	if len(firstLines) > 60 {
		firstLines = firstLines[:60]
	}

	lastLines := lines
	if len(lastLines) > 40 {
		lastLines = lastLines[len(lastLines)-40:]
	}

	seen := make(map[string]bool)
	var moneyLines []string
	for _, line := range lines {
		if moneyLinePattern.MatchString(line) && !seen[line] {
			seen[line] = true
			moneyLines = append(moneyLines, line)
		}
	}

	var combined []string
	combined = append(combined, "=== FIRST LINES ===")
	combined = append(combined, firstLines...)
	combined = append(combined, "=== MONEY LINES ===")
	combined = append(combined, moneyLines...)
	combined = append(combined, "=== LAST LINES ===")
	combined = append(combined, lastLines...)

	excerpt := strings.Join(combined, "\n")
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars]
	}

	return excerpt
}

func toLines(fullText string) []string {
	var lines []string
	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
