package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_BudgetCorrectionReplacesBudget(t *testing.T) {
	merged := Merge("actually make it under 30000", "boots under 20000")
	assert.Equal(t, "boots under 30000", merged)
}

func TestMerge_NoLastQueryPassesThrough(t *testing.T) {
	merged := Merge("actually make it under 30000", "")
	assert.Equal(t, "actually make it under 30000", merged)
}

func TestMerge_NoCorrectionMarkerPassesThrough(t *testing.T) {
	merged := Merge("I want a backpack", "boots under 20000")
	assert.Equal(t, "I want a backpack", merged)
}

func TestMerge_NoBudgetInLastQueryConcatenates(t *testing.T) {
	merged := Merge("actually I need it in black", "waterproof hiking boots")
	assert.Equal(t, "waterproof hiking boots, but actually I need it in black", merged)
}

func TestMerge_MarkerWithoutBudgetConcatenates(t *testing.T) {
	merged := Merge("no, make it leather instead", "boots under 20000")
	assert.Equal(t, "boots under 20000, but no, make it leather instead", merged)
}

func TestMerge_MarkerVariants(t *testing.T) {
	for _, marker := range []string{"actually", "instead", "make it", "change", "update", "no,"} {
		t.Run(marker, func(t *testing.T) {
			current := marker + " under 5000"
			merged := Merge(current, "a watch under 9000")
			assert.Equal(t, "a watch under 5000", merged)
		})
	}
}
