package fsname

import (
	"slices"
	"unicode"

	"golang.org/x/text/runes"
)

// Predicate reports whether a rune belongs to some character class.
type Predicate func(r rune) bool

var (
	whitespace = runes.In(unicode.White_Space)
	control    = runes.In(unicode.Cc)
)

// IsWhitespace reports whether r has the Unicode White_Space property.
func IsWhitespace(r rune) bool {
	return whitespace.Contains(r)
}

// IsControl reports whether r is in the Unicode Cc (control) category.
func IsControl(r rune) bool {
	return control.Contains(r)
}

// Is matches exactly c.
func Is(c rune) Predicate {
	return func(r rune) bool { return r == c }
}

// OneOf matches any of chars.
func OneOf(chars ...rune) Predicate {
	set := slices.Clone(chars)
	return func(r rune) bool { return slices.Contains(set, r) }
}

// Any matches when at least one of ps matches.
func Any(ps ...Predicate) Predicate {
	return func(r rune) bool {
		for _, p := range ps {
			if p(r) {
				return true
			}
		}
		return false
	}
}
