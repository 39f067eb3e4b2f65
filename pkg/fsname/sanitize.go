package fsname

import (
	"errors"
	"strings"
)

// Sanitize runs input through t and collects the result.
func Sanitize(input string, t Transformer) string {
	return Collect(t.Transform(Runes(input)))
}

// SanitizeFilename sanitizes input as a file name for p.
func SanitizeFilename(input string, p Policy) string {
	return Sanitize(input, p.FilenameTransformer())
}

// SanitizeFolder sanitizes input as a folder name for p.
// It panics with an error wrapping ErrNotSupported if p has no folder rules.
func SanitizeFolder(input string, p Policy) string {
	return Sanitize(input, p.FolderTransformer())
}

// TrySanitizeFolder is SanitizeFolder for callers that must not crash:
// an unsupported folder policy is reported as an error wrapping ErrNotSupported.
// Any other panic is re-raised.
func TrySanitizeFolder(input string, p Policy) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok && errors.Is(e, ErrNotSupported) {
				out, err = "", e
				return
			}
			panic(rec)
		}
	}()
	return SanitizeFolder(input, p), nil
}

// SanitizePath sanitizes every '/'-separated segment of path: the last one
// as a file name, the others as folder names. Empty segments are kept, so
// leading, trailing and doubled slashes survive.
func SanitizePath(path string, p Policy) (string, error) {
	segments := strings.Split(path, "/")
	last := len(segments) - 1
	for i, seg := range segments[:last] {
		s, err := TrySanitizeFolder(seg, p)
		if err != nil {
			return "", err
		}
		segments[i] = s
	}
	segments[last] = SanitizeFilename(segments[last], p)
	return strings.Join(segments, "/"), nil
}
