package fsname

// Transformer lazily converts one character stream into another.
// Implementations hold configuration only; per-stream state is created by
// Transform and lives as long as the returned stream.
type Transformer interface {
	Transform(in Stream) Stream
}

// TransformerFunc adapts an ordinary function to the Transformer interface.
type TransformerFunc func(in Stream) Stream

func (f TransformerFunc) Transform(in Stream) Stream {
	return f(in)
}

// Identity returns a transformer that passes its input through unchanged.
func Identity() Transformer {
	return TransformerFunc(func(in Stream) Stream { return in })
}

// Map returns a transformer applying f to every rune. Output length equals input length.
func Map(f func(rune) rune) Transformer {
	return TransformerFunc(func(in Stream) Stream {
		return &mapStream{in: in, f: f}
	})
}

type mapStream struct {
	in Stream
	f  func(rune) rune
}

func (s *mapStream) Next() (rune, bool) {
	r, ok := s.in.Next()
	if !ok {
		return 0, false
	}
	return s.f(r), true
}

// Sequence feeds the output of First into Second.
type Sequence struct {
	First  Transformer
	Second Transformer
}

func (s Sequence) Transform(in Stream) Stream {
	return s.Second.Transform(s.First.Transform(in))
}

// Then composes a and b: a runs first and its output is the input of b.
// Composition is associative but not commutative.
func Then(a, b Transformer) Sequence {
	return Sequence{First: a, Second: b}
}

// Chain composes ts left to right. An empty chain is the identity.
func Chain(ts ...Transformer) Transformer {
	if len(ts) == 0 {
		return Identity()
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		acc = Then(acc, t)
	}
	return acc
}
