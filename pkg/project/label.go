package project

import "regexp"

// Label grammar: leading letter or underscore, then letters, digits and
// underscores, 2-32 characters. Validation is case-sensitive; uniqueness
// checks elsewhere are too.
const (
	MinLabelLen = 2
	MaxLabelLen = 32
)

var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidLabel reports whether s is a well-formed label.
func ValidLabel(s string) bool {
	if len(s) < MinLabelLen || len(s) > MaxLabelLen {
		return false
	}
	return labelPattern.MatchString(s)
}
