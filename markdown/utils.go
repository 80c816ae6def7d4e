package markdown

import (
	"strings"
)

// trimLeft removes the leading run of byte c from line, returning how many
// were removed and the rest of the line.
func trimLeft(line string, c byte) (int, string) {
	for i := 0; i < len(line); i++ {
		if line[i] != c {
			return i, line[i:]
		}
	}
	return len(line), ""
}

// allHavePrefix reports whether every line starts with prefix.
func allHavePrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

// mapLines applies fn to every line of text.
func mapLines(text string, fn func(line string) string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return lines
}
