package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	oldState := map[string]any{
		"sku":      "RTX4090-STRIX",
		"price":    "1999",
		"color":    "black",
		"quantity": int64(12),
	}
	newState := map[string]any{
		"sku":      "RTX4090-STRIX",
		"price":    "1799",
		"quantity": int64(12),
		"website":  "https://example.com",
	}

	changes := Diff(oldState, newState)

	assert.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "1999", "new": "1799"}, changes["price"])
	assert.Equal(t, map[string]any{"old": "black", "new": nil}, changes["color"])
	assert.Equal(t, map[string]any{"old": nil, "new": "https://example.com"}, changes["website"])
	assert.NotContains(t, changes, "sku")
	assert.NotContains(t, changes, "quantity")
}

func TestDiffEmptyWhenUnchanged(t *testing.T) {
	state := map[string]any{"name": "GDDR6X", "version": 3}

	changes := Diff(state, map[string]any{"name": "GDDR6X", "version": 3})

	assert.Empty(t, changes)
}
