package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain title", input: "Interview", expected: "Interview"},
		{name: "spaces become underscores", input: "my great  talk", expected: "my_great_talk"},
		{name: "unsafe chars dropped", input: `What? Why: "Now" <live>|*`, expected: "What_Why_Now_live"},
		{name: "path traversal", input: "../../etc/passwd", expected: "etcpasswd"},
		{name: "control chars dropped", input: "a\x00b\x1bc", expected: "abc"},
		{name: "unicode preserved", input: "vidéo été", expected: "vidéo_été"},
		{name: "emoji preserved", input: "my 🎬 clip", expected: "my_🎬_clip"},
		{name: "empty", input: "", expected: "video"},
		{name: "only unsafe", input: "???", expected: "video"},
		{name: "leading and trailing space", input: "  padded  ", expected: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeBaseName(tt.input))
		})
	}
}

func TestSanitizeBaseName_Truncates(t *testing.T) {
	long := strings.Repeat("é", 80)

	got := SanitizeBaseName(long)

	assert.LessOrEqual(t, len(got), maxBaseNameLength)
	assert.True(t, utf8.ValidString(got))
}
