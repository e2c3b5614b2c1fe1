package match

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a title or artist for comparison.
//
// Lowercases, drops parenthetical and bracketed groups (these usually hold
// "feat.", "remix" or "remastered" annotations that hurt matching), strips
// punctuation, and collapses whitespace. Diacritics are preserved; platforms
// overwhelmingly agree on accented spellings and the occasional divergence is
// absorbed by edit distance.
//
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	parens, brackets := 0, 0
	for _, r := range s {
		switch {
		case r == '(':
			parens++
		case r == ')':
			if parens > 0 {
				parens--
			}
		case r == '[':
			brackets++
		case r == ']':
			if brackets > 0 {
				brackets--
			}
		case parens > 0 || brackets > 0:
			// Inside an annotation group, drop everything.
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
