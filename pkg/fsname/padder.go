package fsname

// Padder appends a pad character to a name that exactly equals one of a fixed
// set of reserved names. Matching is anchored at the start of the stream: a
// reserved name occurring later in the name is not a match.
//
// With a boundary configured (usually '.'), the pad is inserted right before
// the first boundary character that follows a complete match, so "NUL.txt"
// becomes "NUL_.txt". Without one, only a match ending the stream is padded.
// At most one pad is ever inserted per stream.
type Padder struct {
	pad         rune
	names       [][]rune
	boundary    rune
	hasBoundary bool
}

// PadOption configures a Padder.
type PadOption func(*Padder)

// WithBoundary makes the padder insert the pad before r when r directly
// follows a reserved name.
func WithBoundary(r rune) PadOption {
	return func(p *Padder) {
		p.boundary = r
		p.hasBoundary = true
	}
}

// Pad returns a Padder inserting pad after any name in names.
// Names are compared case-sensitively. Empty names never match.
func Pad(pad rune, names []string, opts ...PadOption) Padder {
	p := Padder{
		pad:   pad,
		names: make([][]rune, 0, len(names)),
	}
	for _, n := range names {
		p.names = append(p.names, []rune(n))
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Names returns a copy of the reserved names.
func (p Padder) Names() []string {
	out := make([]string, len(p.names))
	for i, n := range p.names {
		out[i] = string(n)
	}
	return out
}

// Boundary returns the insert-before character, if one is configured.
func (p Padder) Boundary() (rune, bool) {
	return p.boundary, p.hasBoundary
}

func (p Padder) Transform(in Stream) Stream {
	s := &padStream{
		in:          in,
		pad:         p.pad,
		names:       p.names,
		boundary:    p.boundary,
		hasBoundary: p.hasBoundary,
		cursors:     make([]int, len(p.names)),
	}
	for i, n := range p.names {
		if len(n) == 0 {
			s.cursors[i] = dead
			continue
		}
		s.alive++
	}
	return s
}

const dead = -1

// padStream holds one cursor per reserved name. A cursor is dead once the
// input disagreed with its name or ran past its end; dead cursors never revive.
type padStream struct {
	in          Stream
	pad         rune
	names       [][]rune
	boundary    rune
	hasBoundary bool

	cursors []int
	alive   int
	matched bool

	peeked  rune
	peekOK  bool
	hasPeek bool
}

func (s *padStream) Next() (rune, bool) {
	if s.matched {
		r, ok := s.peek()
		if !ok || (s.hasBoundary && r == s.boundary) {
			s.matched = false
			s.killAll()
			return s.pad, true
		}
	}

	r, ok := s.pull()
	if !ok {
		return 0, false
	}

	// a complete match not followed by the boundary is dropped for good
	s.matched = false
	if s.alive > 0 {
		s.advance(r)
	}
	return r, true
}

func (s *padStream) advance(r rune) {
	for i, c := range s.cursors {
		if c == dead {
			continue
		}
		name := s.names[i]
		if name[c] != r {
			s.cursors[i] = dead
			s.alive--
			continue
		}
		c++
		if c == len(name) {
			s.matched = true
			s.cursors[i] = dead
			s.alive--
			continue
		}
		s.cursors[i] = c
	}
}

func (s *padStream) killAll() {
	for i := range s.cursors {
		s.cursors[i] = dead
	}
	s.alive = 0
}

func (s *padStream) peek() (rune, bool) {
	if !s.hasPeek {
		s.peeked, s.peekOK = s.in.Next()
		s.hasPeek = true
	}
	return s.peeked, s.peekOK
}

func (s *padStream) pull() (rune, bool) {
	if s.hasPeek {
		s.hasPeek = false
		return s.peeked, s.peekOK
	}
	return s.in.Next()
}

