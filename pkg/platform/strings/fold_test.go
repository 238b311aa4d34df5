package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeFold(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "folds case and whitespace",
			input:    []string{"  Open ", "ACTIVE", "In-Force"},
			expected: []string{"open", "active", "in-force"},
		},
		{
			name:     "removes duplicates after folding",
			input:    []string{"open", "OPEN", " open "},
			expected: []string{"open"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"abierto", "", "   ", "vigente"},
			expected: []string{"abierto", "vigente"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeFold(tt.input))
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet("open", "Active", "open")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"open", "active"}, s.Values())
	assert.True(t, s.Has("OPEN"))
	assert.True(t, s.Has("  active "))
	assert.False(t, s.Has("closed"))
	assert.False(t, s.Has(""))

	var zero Set
	assert.False(t, zero.Has("open"))
	assert.Equal(t, 0, zero.Len())
}
