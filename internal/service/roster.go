package service

import (
	"strings"
)

const byteOrderMark = "\ufeff"

// ParseRoster splits plain text into names, one per line. Windows line endings
// and a leading byte order mark are accepted; blank lines are dropped.
func ParseRoster(text string) []string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return cleanRoster(strings.Split(text, "\n"))
}

func cleanRoster(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
