package matching

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes ingredient text for comparison: lowercase, only letters
// and single spaces, no leading or trailing whitespace.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// tokens splits already normalized text on whitespace.
func tokens(normalized string) []string {
	return strings.Fields(normalized)
}
