package project

import "strings"

// MultiLineComment is a block of comment text rendered across full lines,
// used for long comments (including the file header) and notes.
type MultiLineComment struct {
	// Text with line breaks normalized to LF.
	Text string

	// BoxMode renders the text inside a character box.
	BoxMode bool

	// MaxWidth is the wrap column; 0 means the renderer's default.
	MaxWidth int

	// BackgroundColor is a packed RGB value; 0 means no highlight. Only
	// meaningful for notes.
	BackgroundColor int
}

// NewMultiLineComment creates a comment with normalized line breaks.
func NewMultiLineComment(text string) *MultiLineComment {
	return &MultiLineComment{Text: NormalizeLineBreaks(text)}
}

// NormalizeLineBreaks converts CRLF and bare CR line breaks to LF.
func NormalizeLineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
