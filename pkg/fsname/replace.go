package fsname

// Replacer emits the mapped character for every key of Map and passes all
// other characters through. It never changes the length of the stream.
type Replacer struct {
	Map CharMap
}

// Replace returns a Replacer over m.
func Replace(m CharMap) Replacer {
	return Replacer{Map: m}
}

func (t Replacer) Transform(in Stream) Stream {
	return &mapStream{in: in, f: func(r rune) rune {
		if v, ok := t.Map.Lookup(r); ok {
			return v
		}
		return r
	}}
}

// ClassReplacer swaps every character matching Class for Replacement.
type ClassReplacer struct {
	Class       Predicate
	Replacement rune
}

func (t ClassReplacer) Transform(in Stream) Stream {
	return &mapStream{in: in, f: func(r rune) rune {
		if t.Class(r) {
			return t.Replacement
		}
		return r
	}}
}

// ReplaceControl replaces control characters such as \x00 or \a with rp.
func ReplaceControl(rp rune) ClassReplacer {
	return ClassReplacer{Class: IsControl, Replacement: rp}
}

// ReplaceWhitespace replaces whitespace characters such as \t or \n with rp.
func ReplaceWhitespace(rp rune) ClassReplacer {
	return ClassReplacer{Class: IsWhitespace, Replacement: rp}
}

// Filter drops every character for which keep returns false.
func Filter(keep Predicate) Transformer {
	return TransformerFunc(func(in Stream) Stream {
		return &filterStream{in: in, keep: keep}
	})
}

type filterStream struct {
	in   Stream
	keep Predicate
}

func (s *filterStream) Next() (rune, bool) {
	for {
		r, ok := s.in.Next()
		if !ok {
			return 0, false
		}
		if s.keep(r) {
			return r, true
		}
	}
}
