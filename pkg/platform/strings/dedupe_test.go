package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLower(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected []string
	}{
		{
			name:     "no lists",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty and whitespace only",
			input:    [][]string{{"", "  "}, {}},
			expected: nil,
		},
		{
			name:     "trims and lowercases",
			input:    [][]string{{"  OkHttp ", "Dalvik"}},
			expected: []string{"okhttp", "dalvik"},
		},
		{
			name:     "dedupes across lists preserving first occurrence",
			input:    [][]string{{"android", "iphone"}, {"IPHONE", "expo", "android"}},
			expected: []string{"android", "iphone", "expo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeLower(tt.input...))
		})
	}
}
