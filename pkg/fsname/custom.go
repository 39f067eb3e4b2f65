package fsname

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Custom is a policy assembled at runtime, usually from a Profile.
// A nil folder pipeline means the target has no folder rules.
type Custom struct {
	name   string
	file   Transformer
	folder Transformer
}

// NewCustom returns a policy using file for file names and folder for
// folder names. Pass a nil folder to mark folders unsupported.
func NewCustom(name string, file, folder Transformer) *Custom {
	if file == nil {
		file = Identity()
	}
	return &Custom{name: name, file: file, folder: folder}
}

// Name returns the target name given at construction.
func (c *Custom) Name() string { return c.name }

func (c *Custom) FilenameTransformer() Transformer {
	return c.file
}

func (c *Custom) FolderTransformer() Transformer {
	if c.folder == nil {
		return unsupported(c.name, "folder names")
	}
	return c.folder
}

// Profile describes a target in YAML:
//
//	name: nas
//	replacement: "_"
//	pad: "_"
//	boundary: "."
//	file:
//	  forbidden: "<>:\"/\\|?*"
//	  control: true
//	  strip_prefix: " ~"
//	  reserved: [CON, NUL]
//	folder:
//	  forbidden: "/"
//
// Each rule set runs collapse_whitespace, forbidden, control, strip_prefix,
// whitespace and reserved, in that order, skipping the steps it leaves empty.
type Profile struct {
	Name        string `yaml:"name"`
	Replacement string `yaml:"replacement"`
	Pad         string `yaml:"pad"`
	Boundary    string `yaml:"boundary"`
	File        *Rules `yaml:"file"`
	Folder      *Rules `yaml:"folder"`
}

// Rules are the naming rules for one kind of name.
type Rules struct {
	Forbidden              string   `yaml:"forbidden"`
	Control                bool     `yaml:"control"`
	Whitespace             bool     `yaml:"whitespace"`
	CollapseWhitespace     bool     `yaml:"collapse_whitespace"`
	StripPrefix            string   `yaml:"strip_prefix"`
	StripLeadingWhitespace bool     `yaml:"strip_leading_whitespace"`
	Reserved               []string `yaml:"reserved"`
}

// ParseProfile decodes a YAML profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Join(ErrInvalidProfile, err)
	}
	return &p, nil
}

// LoadProfile reads and decodes a YAML profile from r.
func LoadProfile(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidProfile, err)
	}
	return ParseProfile(data)
}

// Policy validates the profile and assembles its pipelines.
func (p *Profile) Policy() (*Custom, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if p.File == nil {
		return nil, fmt.Errorf("%w: %s: file rules are required", ErrInvalidProfile, p.Name)
	}

	rp, err := singleRune("replacement", p.Replacement, DefaultReplacement)
	if err != nil {
		return nil, err
	}
	pad, err := singleRune("pad", p.Pad, DefaultPad)
	if err != nil {
		return nil, err
	}

	var padOpts []PadOption
	if p.Boundary != "" {
		b, err := singleRune("boundary", p.Boundary, 0)
		if err != nil {
			return nil, err
		}
		padOpts = append(padOpts, WithBoundary(b))
	}

	var folder Transformer
	if p.Folder != nil {
		folder = p.Folder.pipeline(rp, pad, padOpts)
	}
	return NewCustom(p.Name, p.File.pipeline(rp, pad, padOpts), folder), nil
}

func (r *Rules) pipeline(rp, pad rune, padOpts []PadOption) Transformer {
	b := NewBuilder()
	if r.CollapseWhitespace {
		b.Deduplicate(IsWhitespace)
	}
	if r.Forbidden != "" {
		b.Replace(ReplaceAll([]rune(r.Forbidden), rp))
	}
	if r.Control {
		b.ReplaceControl(rp)
	}

	var prefix []Predicate
	if r.StripPrefix != "" {
		prefix = append(prefix, OneOf([]rune(r.StripPrefix)...))
	}
	if r.StripLeadingWhitespace {
		prefix = append(prefix, IsWhitespace)
	}
	if len(prefix) > 0 {
		b.StripPrefix(Any(prefix...))
	}

	// after stripping, so leading whitespace is still recognisable
	if r.Whitespace {
		b.ReplaceWhitespace(rp)
	}
	if len(r.Reserved) > 0 {
		b.Pad(pad, r.Reserved, padOpts...)
	}
	return b.Build()
}

func singleRune(field, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidProfile, field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
