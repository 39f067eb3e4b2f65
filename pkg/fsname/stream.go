package fsname

import (
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// Stream is a pull-based sequence of runes.
// Next returns the next rune, or false once the stream is exhausted.
// After the first false every further call returns false as well.
type Stream interface {
	Next() (rune, bool)
}

// Runes returns a stream over the runes of s.
// Invalid UTF-8 bytes are decoded as utf8.RuneError, matching a range loop.
func Runes(s string) Stream {
	return &stringStream{s: s}
}

type stringStream struct {
	s   string
	pos int
}

func (s *stringStream) Next() (rune, bool) {
	if s.pos >= len(s.s) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s.s[s.pos:])
	s.pos += size
	return r, true
}

// FromReader returns a stream over r. Any read error, io.EOF included, ends the stream.
func FromReader(r io.RuneReader) Stream {
	return &readerStream{r: r}
}

type readerStream struct {
	r    io.RuneReader
	done bool
}

func (s *readerStream) Next() (rune, bool) {
	if s.done {
		return 0, false
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		s.done = true
		return 0, false
	}
	return r, true
}

// Collect drains s into a string.
func Collect(s Stream) string {
	var b strings.Builder
	for {
		r, ok := s.Next()
		if !ok {
			return b.String()
		}
		b.WriteRune(r)
	}
}

// All adapts s for use in a range loop. Breaking out of the loop stops pulling.
func All(s Stream) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			r, ok := s.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}
