package logging

import (
	"bytes"
	"io"
)

// PrefixWriter wraps an io.Writer and prepends a prefix to every complete line.
// Partial lines are buffered until their trailing newline arrives.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending []byte
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer. Data is reported as fully consumed even while
// buffered, so the wrapped logger never sees short writes.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.pending = append(pw.pending, p...)

	for {
		idx := bytes.IndexByte(pw.pending, '\n')
		if idx < 0 {
			break
		}
		line := pw.pending[:idx+1]
		if _, err := pw.writer.Write(pw.prefix); err != nil {
			return n, err
		}
		if _, err := pw.writer.Write(line); err != nil {
			return n, err
		}
		pw.pending = pw.pending[idx+1:]
	}

	return n, nil
}
