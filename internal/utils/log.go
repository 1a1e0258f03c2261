package utils

import "strings"

// TruncateForLog puts s on one line and shortens it to limit runes, appending an
// ellipsis when truncated. Addresses go through it before being logged.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
