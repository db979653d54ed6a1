package common

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Sanitize prepares raw device output for parsing: escape codes are removed,
// CRLF line endings become LF and backspace-overstrike pairs left by pagers
// are dropped.
func Sanitize(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	if !strings.Contains(s, "\b") {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\b' {
			out = append(out, s[i])
			continue
		}
		if len(out) > 0 {
			_, size := utf8.DecodeLastRune(out)
			out = out[:len(out)-size]
		}
	}
	return string(out)
}

// NonBlankLines returns the lines of s that contain something besides whitespace
func NonBlankLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
