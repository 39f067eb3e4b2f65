package fsname

// Builder assembles a pipeline step by step. Steps run in the order they
// are added.
//
//	t := fsname.NewBuilder().
//	    Replace(fsname.ReplaceAll([]rune{'/'}, '_')).
//	    StripPrefix(fsname.IsWhitespace).
//	    Build()
type Builder struct {
	steps []Transformer
}

// NewBuilder returns an empty builder. Building it yields the identity.
func NewBuilder() *Builder {
	return &Builder{}
}

// Then appends t to the pipeline.
func (b *Builder) Then(t Transformer) *Builder {
	b.steps = append(b.steps, t)
	return b
}

func (b *Builder) Replace(m CharMap) *Builder {
	return b.Then(Replace(m))
}

func (b *Builder) ReplaceControl(rp rune) *Builder {
	return b.Then(ReplaceControl(rp))
}

func (b *Builder) ReplaceWhitespace(rp rune) *Builder {
	return b.Then(ReplaceWhitespace(rp))
}

func (b *Builder) Deduplicate(class Predicate) *Builder {
	return b.Then(Deduplicate(class))
}

func (b *Builder) StripPrefix(class Predicate) *Builder {
	return b.Then(StripPrefix(class))
}

func (b *Builder) Filter(keep Predicate) *Builder {
	return b.Then(Filter(keep))
}

func (b *Builder) Pad(pad rune, names []string, opts ...PadOption) *Builder {
	return b.Then(Pad(pad, names, opts...))
}

// Build returns the composed pipeline.
func (b *Builder) Build() Transformer {
	return Chain(b.steps...)
}
