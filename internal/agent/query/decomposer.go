package query

import (
	"regexp"
	"strings"
	"unicode"
)

// budgetPattern extracts a shared budget constraint such as "under 20000" or
// "less than ₦15,000". At most one is propagated across sub-queries.
var budgetPattern = regexp.MustCompile(`(?i)(under|below|less than)\s*₦?\s*[\d,]+`)

// actionVerbPattern detects parts that already read as a request.
var actionVerbPattern = regexp.MustCompile(`(?i)(buy|want|looking|need|search|recommend)`)

// connectors are the phrases that separate independent product mentions.
var connectors = []string{" and ", ",", " as well as ", " plus ", " together with "}

const splitMarker = "|"

// Decompose splits a multi-item utterance into ordered, normalized sub-queries
// and propagates the shared budget constraint to parts that lack it. The
// result always has at least one element.
func Decompose(rawQuery string) []string {
	q := strings.TrimSpace(rawQuery)

	budgetText := budgetPattern.FindString(q)

	lowered := strings.ToLower(q)
	for _, conn := range connectors {
		lowered = strings.ReplaceAll(lowered, conn, splitMarker)
	}

	var parts []string
	for _, p := range strings.Split(lowered, splitMarker) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, capitalize(p))
	}
	if len(parts) == 0 {
		parts = []string{capitalize(lowered)}
	}

	subQueries := make([]string, 0, len(parts))
	for _, part := range parts {
		if !actionVerbPattern.MatchString(part) {
			part = "I want " + part
		}
		if budgetText != "" && !strings.Contains(strings.ToLower(part), strings.ToLower(budgetText)) {
			part = part + " " + budgetText
		}
		subQueries = append(subQueries, part)
	}
	return subQueries
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
