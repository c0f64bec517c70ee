package format

import (
	"fmt"
	"strings"
)

// Severity classifies a report entry.
type Severity int

const (
	SevNotice Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNotice:
		return "notice"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a single load issue: the collection or field involved, the
// offending key or value, and a human-readable detail.
type Entry struct {
	Severity Severity
	Field    string
	Key      string
	Detail   string
}

func (e Entry) String() string {
	if e.Key == "" {
		return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Detail)
	}
	return fmt.Sprintf("[%s] %s (%s): %s", e.Severity, e.Field, e.Key, e.Detail)
}

// Report accumulates the issues found during one load.
type Report struct {
	Entries []Entry
}

// Add appends an entry.
func (r *Report) Add(sev Severity, field, key, detail string) {
	r.Entries = append(r.Entries, Entry{Severity: sev, Field: field, Key: key, Detail: detail})
}

// Count returns the number of entries at the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, e := range r.Entries {
		if e.Severity == sev {
			n++
		}
	}
	return n
}

// HasProblems reports whether any entry is a Warning or worse.
func (r *Report) HasProblems() bool {
	for _, e := range r.Entries {
		if e.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (r *Report) String() string {
	var sb strings.Builder
	for _, e := range r.Entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
