package fsname

// CharMap looks up the replacement for a single character.
type CharMap interface {
	Lookup(r rune) (rune, bool)
}

// Pairs is an ordered list of from→to pairs searched linearly.
// It suits the handful of entries a target usually forbids.
type Pairs [][2]rune

func (p Pairs) Lookup(r rune) (rune, bool) {
	for _, kv := range p {
		if kv[0] == r {
			return kv[1], true
		}
	}
	return r, false
}

// Table is a hash-backed CharMap with constant-time lookup.
type Table map[rune]rune

func (t Table) Lookup(r rune) (rune, bool) {
	v, ok := t[r]
	if !ok {
		return r, false
	}
	return v, true
}

// CharMapFunc adapts a function to the CharMap interface.
type CharMapFunc func(r rune) (rune, bool)

func (f CharMapFunc) Lookup(r rune) (rune, bool) {
	return f(r)
}

// ReplaceAll maps every rune in chars to with.
func ReplaceAll(chars []rune, with rune) Table {
	t := make(Table, len(chars))
	for _, c := range chars {
		t[c] = with
	}
	return t
}
