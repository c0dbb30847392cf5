package formatter

import (
	"fmt"
	"strings"
)

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!', '\\':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Alert renders an operator alert: a bold title followed by escaped detail lines.
func Alert(title string, details ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚠️ *%s*", EscapeMarkdownV2(title))
	for _, d := range details {
		if d == "" {
			continue
		}
		sb.WriteString("\n\n")
		sb.WriteString(EscapeMarkdownV2(d))
	}
	return sb.String()
}

// Truncate cuts s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
