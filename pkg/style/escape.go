package style

import "strings"

// EscapeSelector backslash-escapes the characters in a class name that
// are special inside CSS selectors, so fractions, brackets, variants and
// opacity suffixes survive verbatim.
func EscapeSelector(class string) string {
	var b strings.Builder
	b.Grow(len(class) + 8)
	for _, c := range class {
		switch c {
		case ':', '/', '.', '[', ']', '#', '%', '!', ',', '(', ')', '\'', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
