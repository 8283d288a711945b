package ambiguity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

func TestClarify_ThreeTurnsThenFallback(t *testing.T) {
	session := &model.Session{UserID: "u1"}

	first := Clarify(session, model.AmbiguityPrice)
	assert.Equal(t, clarificationTemplates[model.AmbiguityPrice][0], first)
	assert.Equal(t, 1, session.ClarificationAttempts)

	second := Clarify(session, model.AmbiguityPrice)
	assert.Equal(t, clarificationTemplates[model.AmbiguityPrice][1], second)
	assert.Equal(t, 2, session.ClarificationAttempts)

	third := Clarify(session, model.AmbiguityPrice)
	assert.Equal(t, fallbackMessage, third)
	assert.Equal(t, 0, session.ClarificationAttempts, "attempts reset after the fallback")
}

func TestClarify_SecondAttemptUsesSecondTemplate(t *testing.T) {
	session := &model.Session{UserID: "u1", ClarificationAttempts: 1}
	reply := Clarify(session, model.AmbiguityGeneric)
	assert.Equal(t, clarificationTemplates[model.AmbiguityGeneric][1], reply)
}

func TestClarify_UnknownCategoryUsesGenericTemplates(t *testing.T) {
	session := &model.Session{UserID: "u1"}
	reply := Clarify(session, model.AmbiguityNone)
	assert.Equal(t, clarificationTemplates[model.AmbiguityGeneric][0], reply)
}

func TestClarify_CategoriesAreIndependentOfAttempts(t *testing.T) {
	// attempts carry across categories; only the template set changes
	session := &model.Session{UserID: "u1"}
	_ = Clarify(session, model.AmbiguityPrice)
	reply := Clarify(session, model.AmbiguityQuality)
	assert.Equal(t, clarificationTemplates[model.AmbiguityQuality][1], reply)
	assert.Equal(t, 2, session.ClarificationAttempts)
}
