package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxBaseNameLength = 100

// unsafeChars break paths on at least one common filesystem.
var unsafeChars = map[rune]bool{
	'"':  true,
	'\\': true,
	'/':  true,
	':':  true,
	'<':  true,
	'>':  true,
	'|':  true,
	'?':  true,
	'*':  true,
}

// SanitizeBaseName turns a video title into a file base name: unsafe and
// control characters are dropped, whitespace runs become a single underscore
// and the result is capped at 100 bytes on a rune boundary.
// Unicode letters are preserved. Empty results fall back to "video".
func SanitizeBaseName(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))

	pendingSep := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			pendingSep = sb.Len() > 0
			continue
		case r < 32 || r == 127 || unsafeChars[r]:
			continue
		}
		if pendingSep {
			sb.WriteRune('_')
			pendingSep = false
		}
		sb.WriteRune(r)
	}

	result := strings.Trim(sb.String(), "._")
	if result == "" {
		return "video"
	}
	return truncateToBytes(result, maxBaseNameLength)
}

func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
