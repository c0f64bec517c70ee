package format

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MagicLine identifies the format family and major version. It must appear
// verbatim as the first line of every project file.
const MagicLine = "### bincase proj v1.0 ###"

// wrapRecord frames a surrogate tree: magic line, structured body with
// cosmetic line breaks, trailing newline.
func wrapRecord(rec *projRec) ([]byte, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding project body: %w", err)
	}

	var out bytes.Buffer
	out.Grow(len(body) + len(body)/8 + len(MagicLine) + 2)
	out.WriteString(MagicLine)
	out.WriteByte('\n')
	out.Write(breakLines(body))
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// unwrapFile strips the magic line and parses the body. A missing magic
// line or a structural parse failure is fatal; nothing is recovered from a
// file that fails here.
func unwrapFile(data []byte) (*projRec, error) {
	prefix := []byte(MagicLine + "\n")
	if !bytes.HasPrefix(data, prefix) {
		return nil, ErrNotProjectFile
	}
	body := data[len(prefix):]

	rec := &projRec{}
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return rec, nil
}

// compactRaw strips insignificant whitespace from an opaque payload so the
// cosmetic line breaking cannot leak into the carried bytes. Payloads that
// fail to compact pass through unchanged.
func compactRaw(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return json.RawMessage(buf.Bytes())
}

// breakLines inserts a newline after each object-open brace and each field
// separator, which keeps version-control diffs small when single entries
// change. The breaks are purely cosmetic; the body parses identically with
// or without them. String contents are left untouched.
func breakLines(body []byte) []byte {
	out := make([]byte, 0, len(body)+len(body)/8)
	inString := false
	escaped := false
	for _, c := range body {
		out = append(out, c)
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', ',':
			out = append(out, '\n')
		}
	}
	return out
}
