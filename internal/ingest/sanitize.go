package ingest

import (
	"regexp"
	"strings"
)

// maxColumnNameLen caps sanitized column names.
const maxColumnNameLen = 60

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	strippedChars  = regexp.MustCompile(`[/%()]`)
)

// SanitizeColumn produces the stable key used for a source column throughout
// the system: whitespace runs collapse to a single underscore, slash, percent
// and parenthesis characters are stripped, the result is trimmed and capped.
// Applied exactly once at ingestion.
func SanitizeColumn(name string) string {
	s := strings.TrimSpace(name)
	s = whitespaceRuns.ReplaceAllString(s, "_")
	s = strippedChars.ReplaceAllString(s, "")
	s = strings.Trim(s, "_")

	runes := []rune(s)
	if len(runes) > maxColumnNameLen {
		runes = runes[:maxColumnNameLen]
	}
	return string(runes)
}
