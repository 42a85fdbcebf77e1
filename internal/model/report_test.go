package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{137.6, 100},
		{-5, 0},
		{0, 0},
		{100, 100},
		{72.4, 72},
		{72.5, 73},
		{99.9, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.in), "ClampScore(%v)", tt.in)
	}
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, "high", NormalizePriority("high"))
	assert.Equal(t, "medium", NormalizePriority("medium"))
	assert.Equal(t, "low", NormalizePriority("low"))

	// Anything else is coerced to medium, never rejected.
	assert.Equal(t, "medium", NormalizePriority("urgent"))
	assert.Equal(t, "medium", NormalizePriority("HIGH"))
	assert.Equal(t, "medium", NormalizePriority(""))
}
