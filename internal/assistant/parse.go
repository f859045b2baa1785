package assistant

import (
	"errors"
	"path"
	"strings"
)

// ErrUnparseableEdits means the reply announced file changes that could not
// be parsed into (path, content) pairs. Callers must surface this to the user
// and apply nothing.
var ErrUnparseableEdits = errors.New("assistant reply announced edits in an unrecognized format")

// ParseEdits extracts file edits from a model reply. The expected shape is a
// "File: <path>" line followed by a fenced code block holding the complete
// new file content. A reply without any "File:" line parses to zero edits
// (a plain conversational answer).
func ParseEdits(reply string) ([]FileEdit, error) {
	lines := strings.Split(reply, "\n")

	var edits []FileEdit
	markers := 0
	for i := 0; i < len(lines); i++ {
		rest, ok := strings.CutPrefix(strings.TrimSpace(lines[i]), "File:")
		if !ok {
			continue
		}
		markers++

		p := cleanEditPath(rest)
		if p == "" {
			continue
		}

		// Skip blank lines up to the opening fence.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
			continue
		}
		var body []string
		closed := false
		for k := j + 1; k < len(lines); k++ {
			if strings.TrimSpace(lines[k]) == "```" {
				edits = append(edits, FileEdit{Path: p, Content: strings.Join(body, "\n")})
				i = k
				closed = true
				break
			}
			body = append(body, lines[k])
		}
		if !closed {
			break
		}
	}

	if markers > 0 && len(edits) == 0 {
		return nil, ErrUnparseableEdits
	}
	return edits, nil
}

// cleanEditPath normalizes a path from a "File:" line: trims quotes and
// backticks, forces forward slashes, and rejects anything absolute or
// escaping the repo root.
func cleanEditPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`\"'")
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimPrefix(s, "./")
	if s == "" || strings.HasPrefix(s, "/") {
		return ""
	}
	cleaned := path.Clean(s)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return ""
	}
	return cleaned
}
