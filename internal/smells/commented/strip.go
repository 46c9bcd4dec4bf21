package commented

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stripComment removes comment delimiters and returns the trimmed content
// lines of a single comment token. Empty lines are dropped. For block
// comments a leading "*" gutter on continuation lines is removed.
func stripComment(raw string) []string {
	switch {
	case strings.HasPrefix(raw, "//"):
		content := strings.TrimSpace(raw[2:])
		if content == "" {
			return nil
		}
		return []string{content}

	case strings.HasPrefix(raw, "/*"):
		body := strings.TrimSuffix(raw[2:], "*/")
		var lines []string
		for i, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if i > 0 && isGutter(line) {
				line = strings.TrimSpace(line[1:])
			}
			if line != "" {
				lines = append(lines, line)
			}
		}
		return lines

	default:
		content := strings.TrimSpace(raw)
		if content == "" {
			return nil
		}
		return []string{content}
	}
}

// isGutter matches a trimmed continuation line opening with a lone "*",
// so "* x" and "*" are gutters while "*p = 0;" is content
func isGutter(line string) bool {
	if !strings.HasPrefix(line, "*") {
		return false
	}
	next, _ := utf8.DecodeRuneInString(line[1:])
	return len(line) == 1 || unicode.IsSpace(next)
}
