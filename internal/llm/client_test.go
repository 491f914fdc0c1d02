package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{0, 1},   // floor
		{4, 1},   // rounds to 0, clamped up
		{5, 1},   // round(0.5) = 1
		{15, 2},  // round(1.5) = 2
		{50, 5},
		{95, 10}, // round(9.5) = 10
		{100, 10},
		{250, 10}, // out-of-range backend output still clamps
		{-10, 1},
	}

	for _, tt := range tests {
		got := clampScore(tt.raw)
		assert.Equal(t, tt.want, got, "raw %d", tt.raw)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 10)
	}
}

func TestUnfence(t *testing.T) {
	plain := `{"title":"pay rent","notes":"","dueDate":"2024-06-16"}`

	assert.Equal(t, plain, unfence(plain))
	assert.Equal(t, plain, unfence("```json\n"+plain+"\n```"))
	assert.Equal(t, plain, unfence("```\n"+plain+"\n```"))
	assert.Equal(t, plain, unfence("  "+plain+"\n"))
}

func TestParsedTaskUnmarshal(t *testing.T) {
	var parsed ParsedTask
	err := json.Unmarshal([]byte(`{"title":"pay rent","notes":"before noon","dueDate":"2024-06-16"}`), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "pay rent", parsed.Title)
	assert.Equal(t, "before noon", parsed.Notes)
	assert.Equal(t, "2024-06-16", parsed.DueDate)
}

func TestNotesLine(t *testing.T) {
	assert.Equal(t, "", notesLine(""))
	assert.Equal(t, "Notes: buy milk\n", notesLine("buy milk"))
}
