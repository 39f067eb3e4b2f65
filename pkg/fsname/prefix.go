package fsname

// PrefixStripper drops the leading characters matching Class. Once a
// character outside the class is seen, it and everything after it pass
// through unchanged.
type PrefixStripper struct {
	Class Predicate
}

// StripPrefix returns a PrefixStripper for class.
func StripPrefix(class Predicate) PrefixStripper {
	return PrefixStripper{Class: class}
}

func (t PrefixStripper) Transform(in Stream) Stream {
	return &prefixStream{in: in, class: t.Class}
}

type prefixStream struct {
	in          Stream
	class       Predicate
	prefixEnded bool
}

func (s *prefixStream) Next() (rune, bool) {
	for {
		r, ok := s.in.Next()
		if !ok {
			return 0, false
		}
		if s.prefixEnded {
			return r, true
		}
		if !s.class(r) {
			s.prefixEnded = true
			return r, true
		}
	}
}
