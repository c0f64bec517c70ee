package project

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLabel(t *testing.T) {
	testCases := []struct {
		name  string
		label string
		want  bool
	}{
		{"simple", "START", true},
		{"leading_underscore", "_irq", true},
		{"mixed_case", "DrawSprite2", true},
		{"min_length", "ab", true},
		{"max_length", strings.Repeat("a", 32), true},
		{"too_short", "a", false},
		{"too_long", strings.Repeat("a", 33), false},
		{"empty", "", false},
		{"leading_digit", "1UP", false},
		{"embedded_space", "BAD LBL", false},
		{"punctuation", "foo-bar", false},
		{"non_ascii", "fü", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidLabel(tc.label))
		})
	}
}
