package model

import "context"

// ResponseCache memoizes assembled multi-part answers keyed by the raw query
// text. Expired entries read as misses.
type ResponseCache interface {
	// Get returns the cached answer for the exact raw query text, with ok=false
	// on a miss or expired entry.
	Get(ctx context.Context, rawQuery string) (answer string, ok bool, err error)

	// Set stores the answer under the raw query text with the cache's TTL.
	Set(ctx context.Context, rawQuery string, answer string) error
}
