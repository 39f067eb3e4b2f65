package fsname

// Deduplicator keeps only the first character of every run of consecutive
// characters matching Class. Characters outside the class always pass and
// end the current run.
type Deduplicator struct {
	Class Predicate
}

// Deduplicate returns a Deduplicator for class.
func Deduplicate(class Predicate) Deduplicator {
	return Deduplicator{Class: class}
}

func (t Deduplicator) Transform(in Stream) Stream {
	return &dedupStream{in: in, class: t.Class}
}

type dedupStream struct {
	in    Stream
	class Predicate
	inRun bool
}

func (s *dedupStream) Next() (rune, bool) {
	for {
		r, ok := s.in.Next()
		if !ok {
			return 0, false
		}
		if !s.class(r) {
			s.inRun = false
			return r, true
		}
		if !s.inRun {
			s.inRun = true
			return r, true
		}
	}
}
