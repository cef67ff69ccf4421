package slug

import (
	"strings"
	"unicode"
)

// Separator joins the words of a slug
const Separator = "_"

// Make derives a name slug: lowercase words joined by "_".
// Whitespace and the separators - _ . / split words; other punctuation is dropped.
func Make(name string) string {
	var b strings.Builder
	pending := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pending && b.Len() > 0 {
				b.WriteString(Separator)
			}
			pending = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '/':
			pending = true
		}
	}

	return b.String()
}
