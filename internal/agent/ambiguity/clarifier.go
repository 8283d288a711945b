package ambiguity

import (
	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// maxClarificationAttempts is how many follow-up questions we ask before
// giving up and issuing the generic fallback.
const maxClarificationAttempts = 2

// fallbackMessage is returned once clarification attempts are exhausted.
const fallbackMessage = "I'm still not sure what you're looking for. Could you describe the product, for example \"waterproof hiking boots under 20000\"?"

// clarificationTemplates holds the follow-up questions per ambiguity category,
// indexed by how many times we have already asked.
var clarificationTemplates = map[model.AmbiguityCategory][]string{
	model.AmbiguityPrice: {
		"What's your budget range? That will help me find the right options.",
		"Could you give me a price limit, like \"under 20000\"?",
	},
	model.AmbiguityQuality: {
		"What matters most to you, durability, brand, or features?",
		"Which product are you comparing? I can point you to the top-rated ones.",
	},
	model.AmbiguityGeneric: {
		"Could you tell me what kind of product you have in mind?",
		"What will you use it for? A category or an example product helps.",
	},
}

// Clarify advances the clarification state machine for an ambiguous turn and
// returns the follow-up question (or the fallback once attempts are
// exhausted). It mutates session.ClarificationAttempts in place; the caller
// persists the session.
func Clarify(session *model.Session, category model.AmbiguityCategory) string {
	if session.ClarificationAttempts >= maxClarificationAttempts {
		session.ClarificationAttempts = 0
		return fallbackMessage
	}

	templates, ok := clarificationTemplates[category]
	if !ok {
		templates = clarificationTemplates[model.AmbiguityGeneric]
	}

	idx := session.ClarificationAttempts
	if idx > len(templates)-1 {
		idx = len(templates) - 1
	}
	session.ClarificationAttempts++
	return templates[idx]
}

// FallbackMessage exposes the terminal clarification reply for callers that
// need to recognise it.
func FallbackMessage() string {
	return fallbackMessage
}
