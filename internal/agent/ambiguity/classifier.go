package ambiguity

import (
	"context"
	"strings"
	"unicode"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// Classifier decides whether a query is specific enough to answer. The rules
// run in a fixed order and the first match wins; the order is part of the
// contract, not an optimization.
type Classifier struct {
	fallback model.BorderlineClassifier
}

func NewClassifier(fallback model.BorderlineClassifier) *Classifier {
	return &Classifier{fallback: fallback}
}

// queryFeatures precomputes everything the rule list needs from one query.
type queryFeatures struct {
	lowered string
	words   map[string]struct{}
	history []string
}

func newQueryFeatures(query string, history []string) *queryFeatures {
	lowered := strings.ToLower(strings.TrimSpace(query))
	return &queryFeatures{
		lowered: lowered,
		words:   tokenize(lowered),
		history: history,
	}
}

func tokenize(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}

func (f *queryFeatures) hasWordFrom(vocab map[string]struct{}) bool {
	for w := range vocab {
		if _, ok := f.words[w]; ok {
			return true
		}
	}
	return false
}

// hasTermFrom matches single-word terms against whole words and multi-word
// phrases as substrings.
func (f *queryFeatures) hasTermFrom(terms []string) bool {
	for _, t := range terms {
		if strings.ContainsRune(t, ' ') {
			if strings.Contains(f.lowered, t) {
				return true
			}
			continue
		}
		if _, ok := f.words[t]; ok {
			return true
		}
	}
	return false
}

func (f *queryFeatures) historyHasCategory() bool {
	for _, past := range f.history {
		pastWords := tokenize(strings.ToLower(past))
		for w := range productCategories {
			if _, ok := pastWords[w]; ok {
				return true
			}
		}
	}
	return false
}

var (
	notAmbiguous = model.AmbiguityResult{IsAmbiguous: false, Category: model.AmbiguityNone}

	ambiguousPrice   = model.AmbiguityResult{IsAmbiguous: true, Category: model.AmbiguityPrice}
	ambiguousQuality = model.AmbiguityResult{IsAmbiguous: true, Category: model.AmbiguityQuality}
	ambiguousGeneric = model.AmbiguityResult{IsAmbiguous: true, Category: model.AmbiguityGeneric}
)

// rule pairs a predicate with its verdict. A rule returns (result, true) when
// it decides, or (_, false) to pass to the next rule.
type rule struct {
	name string
	eval func(ctx context.Context, c *Classifier, f *queryFeatures) (model.AmbiguityResult, bool)
}

var rules = []rule{
	{"brand_and_category", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.hasWordFrom(brands) && f.hasWordFrom(productCategories) {
			return notAmbiguous, true
		}
		return notAmbiguous, false
	}},
	{"history_has_category", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.historyHasCategory() {
			return notAmbiguous, true
		}
		return notAmbiguous, false
	}},
	{"price_term", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.hasTermFrom(priceTerms) {
			return ambiguousPrice, true
		}
		return notAmbiguous, false
	}},
	{"quality_term", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.hasTermFrom(qualityTerms) {
			return ambiguousQuality, true
		}
		return notAmbiguous, false
	}},
	{"generic_term", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.hasTermFrom(genericTerms) {
			return ambiguousGeneric, true
		}
		return notAmbiguous, false
	}},
	{"category_with_descriptor", func(_ context.Context, _ *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if f.hasWordFrom(productCategories) && f.hasWordFrom(descriptors) {
			return notAmbiguous, true
		}
		return notAmbiguous, false
	}},
	{"category_borderline", func(ctx context.Context, c *Classifier, f *queryFeatures) (model.AmbiguityResult, bool) {
		if !f.hasWordFrom(productCategories) {
			return notAmbiguous, false
		}
		if c.fallback == nil {
			return notAmbiguous, true
		}
		vague, err := c.fallback.Classify(ctx, f.lowered)
		if err != nil {
			// fail open so a flaky model never blocks the user
			logx.Warn().Err(err).Str("stage", "borderline_classifier").Msg("fallback classifier failed, assuming not ambiguous")
			return notAmbiguous, true
		}
		if vague {
			return ambiguousGeneric, true
		}
		return notAmbiguous, true
	}},
	{"no_category", func(_ context.Context, _ *Classifier, _ *queryFeatures) (model.AmbiguityResult, bool) {
		return ambiguousGeneric, true
	}},
}

// Classify evaluates the ordered rule list against the query and the user's
// recent past utterances.
func (c *Classifier) Classify(ctx context.Context, query string, history []string) model.AmbiguityResult {
	f := newQueryFeatures(query, history)
	for _, r := range rules {
		if result, decided := r.eval(ctx, c, f); decided {
			logx.Debug().Str("rule", r.name).Bool("ambiguous", result.IsAmbiguous).Str("category", string(result.Category)).Msg("ambiguity rule matched")
			return result
		}
	}
	// unreachable: the last rule always decides
	return ambiguousGeneric
}
