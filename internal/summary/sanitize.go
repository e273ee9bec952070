package summary

import (
	"regexp"
	"strings"
)

// Models occasionally wrap answers in fences or prepend disclaimers despite
// instructions. Strip the known patterns before display.
var (
	reInlineNote    = regexp.MustCompile(`(?i)\((?:note|disclaimer)\b[^)]*\)`)
	reBracketedNote = regexp.MustCompile(`(?i)\[(?:note|disclaimer)\b[^\]]*\]`)
	reNoteLine      = regexp.MustCompile(`(?i)^(?:note|disclaimer)\s*:.*$`)
	reCodeFence     = regexp.MustCompile("(?m)^```[a-z]*\\s*$")
)

// Sanitize removes model disclaimers and fencing from generated text while
// preserving the content lines.
func Sanitize(s string) string {
	s = reCodeFence.ReplaceAllString(s, "")
	s = reInlineNote.ReplaceAllString(s, "")
	s = reBracketedNote.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if reNoteLine.MatchString(trimmed) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	cleaned := strings.Join(out, "\n")
	// Collapse runs of blank lines left behind by removals.
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	// Collapse doubled spaces from inline removals.
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	return strings.TrimSpace(cleaned)
}
