package query

import (
	"regexp"
	"strings"
)

// correctionMarkers are lexical cues that the user is amending the previous
// request rather than starting a new one.
var correctionMarkers = []string{"actually", "instead", "make it", "change", "update", "no,"}

// lastBudgetPattern locates the budget substring in the previous query that a
// correction replaces.
var lastBudgetPattern = regexp.MustCompile(`(?i)under\s*₦?\s*[\d,]+`)

// Merge rewrites a short correction follow-up against the user's previous
// query. When the current query carries no correction marker, or there is no
// previous query, the current query is returned unchanged. The caller persists
// the returned effective query as the new last query.
func Merge(currentQuery, lastQuery string) string {
	if lastQuery == "" || !hasCorrectionMarker(currentQuery) {
		return currentQuery
	}

	// Prefer a surgical budget swap: replace the old budget phrase with the
	// corrected one when both sides carry one.
	if newBudget := lastBudgetPattern.FindString(currentQuery); newBudget != "" {
		if lastBudgetPattern.MatchString(lastQuery) {
			return lastBudgetPattern.ReplaceAllString(lastQuery, newBudget)
		}
	}

	// No budget to substitute: append the modification instead.
	return lastQuery + ", but " + currentQuery
}

func hasCorrectionMarker(query string) bool {
	lowered := strings.ToLower(query)
	for _, marker := range correctionMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
