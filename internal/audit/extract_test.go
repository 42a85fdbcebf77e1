package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object", func(t *testing.T) {
		obj, ok := extractJSONObject(`{"a": 1}`)
		require.True(t, ok)
		assert.Equal(t, `{"a": 1}`, obj)
	})

	t.Run("wrapped in prose", func(t *testing.T) {
		obj, ok := extractJSONObject("Here is your report:\n{\"score\": 80}\nHope that helps!")
		require.True(t, ok)
		assert.Equal(t, `{"score": 80}`, obj)
	})

	t.Run("markdown fenced", func(t *testing.T) {
		obj, ok := extractJSONObject("```json\n{\"score\": 80}\n```")
		require.True(t, ok)
		assert.Equal(t, `{"score": 80}`, obj)
	})

	t.Run("nested objects", func(t *testing.T) {
		obj, ok := extractJSONObject(`text {"a": {"b": {"c": 1}}, "d": [1, 2]} trailing`)
		require.True(t, ok)
		assert.Equal(t, `{"a": {"b": {"c": 1}}, "d": [1, 2]}`, obj)
	})

	t.Run("braces inside strings", func(t *testing.T) {
		obj, ok := extractJSONObject(`{"summary": "use { and } carefully", "n": 1}`)
		require.True(t, ok)
		assert.Equal(t, `{"summary": "use { and } carefully", "n": 1}`, obj)
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		obj, ok := extractJSONObject(`{"quote": "she said \"hi {there}\""}`)
		require.True(t, ok)
		assert.Equal(t, `{"quote": "she said \"hi {there}\""}`, obj)
	})

	t.Run("no json at all", func(t *testing.T) {
		_, ok := extractJSONObject("I'm sorry, I can't produce that report.")
		assert.False(t, ok)
	})

	t.Run("unbalanced object", func(t *testing.T) {
		_, ok := extractJSONObject(`{"a": 1`)
		assert.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		_, ok := extractJSONObject("")
		assert.False(t, ok)
	})
}
