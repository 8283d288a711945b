package model

import "context"

// Answer is the result of generating a response for a single sub-query.
type Answer struct {
	Text     string
	Snippets []string
}

// AnswerGenerator produces a natural-language answer for one sub-query given
// the rendered conversation context. Implementations may be slow; callers are
// expected to bound each invocation with a context deadline.
type AnswerGenerator interface {
	Generate(ctx context.Context, conversationContext string, subQuery string) (*Answer, error)
}

// BorderlineClassifier answers whether a borderline query (product mentioned
// without any descriptor) is ambiguous. Errors are treated as "not ambiguous"
// by callers so a flaky model never blocks the user.
type BorderlineClassifier interface {
	Classify(ctx context.Context, query string) (bool, error)
}
