package fsname

import (
	"fmt"
	"slices"
	"strings"
)

// Policy holds the naming rules of one target filesystem or service.
type Policy interface {
	// FilenameTransformer returns the pipeline for file names.
	FilenameTransformer() Transformer
	// FolderTransformer returns the pipeline for folder names.
	// Targets without folder rules panic with an error wrapping ErrNotSupported.
	FolderTransformer() Transformer
}

const (
	// DefaultReplacement stands in for forbidden characters.
	DefaultReplacement = '\uFFFD'
	// DefaultPad is appended to reserved names.
	DefaultPad = '_'
)

// Option configures a built-in policy.
type Option func(*settings)

// WithReplacement sets the character substituted for forbidden characters.
func WithReplacement(r rune) Option {
	return func(s *settings) { s.replacement = r }
}

// WithPad sets the character used to break reserved names.
func WithPad(r rune) Option {
	return func(s *settings) { s.pad = r }
}

type settings struct {
	replacement rune
	pad         rune
}

func newSettings(opts []Option) settings {
	s := settings{replacement: DefaultReplacement, pad: DefaultPad}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// rp and padChar keep zero-value policies usable.
func (s settings) rp() rune {
	if s.replacement == 0 {
		return DefaultReplacement
	}
	return s.replacement
}

func (s settings) padChar() rune {
	if s.pad == 0 {
		return DefaultPad
	}
	return s.pad
}

func unsupported(target, what string) Transformer {
	panic(fmt.Errorf("%w: %s %s", ErrNotSupported, target, what))
}

var registry = map[string]func(...Option) Policy{
	"linux":    func(opts ...Option) Policy { return NewLinux(opts...) },
	"windows":  func(opts ...Option) Policy { return NewWindows(opts...) },
	"onedrive": func(opts ...Option) Policy { return NewOneDrive(opts...) },
	"s3":       func(opts ...Option) Policy { return NewS3(opts...) },
}

// Lookup returns the built-in policy registered under name (case-insensitive).
func Lookup(name string, opts ...Option) (Policy, error) {
	mk, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	return mk(opts...), nil
}

// Targets lists the names accepted by Lookup in sorted order.
func Targets() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
