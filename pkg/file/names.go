package file

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/fsname/pkg/fsname"
	"github.com/dmitrymomot/fsname/pkg/logger"
)

// namer turns caller-supplied paths into storage keys that the backend
// accepts, using one naming policy for every segment.
type namer struct {
	policy fsname.Policy
	log    *slog.Logger
}

// fileKey sanitizes path as a file location: every segment but the last is
// a folder name, the last one is a file name.
func (n namer) fileKey(path string) (string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return "", err
	}
	if len(segs) == 0 {
		return "", fmt.Errorf("%w: empty file path", ErrInvalidPath)
	}

	last := len(segs) - 1
	for i := range segs[:last] {
		if segs[i], err = n.folder(segs[i]); err != nil {
			return "", err
		}
	}
	if segs[last], err = checkSegment(fsname.SanitizeFilename(segs[last], n.policy)); err != nil {
		return "", err
	}

	key := strings.Join(segs, "/")
	n.logRename("file", path, key)
	return key, nil
}

// dirKey sanitizes path as a directory location. The storage root is "".
func (n namer) dirKey(path string) (string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return "", err
	}
	for i := range segs {
		if segs[i], err = n.folder(segs[i]); err != nil {
			return "", err
		}
	}

	key := strings.Join(segs, "/")
	n.logRename("folder", path, key)
	return key, nil
}

func (n namer) folder(seg string) (string, error) {
	s, err := fsname.TrySanitizeFolder(seg, n.policy)
	if err != nil {
		return "", errors.Join(ErrUnsupportedPolicy, err)
	}
	return checkSegment(s)
}

func (n namer) logRename(kind, from, to string) {
	if strings.Trim(from, "/") == to {
		return
	}
	n.log.Debug("storage name sanitized", logger.Kind(kind), logger.Rename(from, to))
}

// splitPath breaks a slash-separated path into segments, dropping empty
// and "." segments. A ".." segment is rejected outright.
func splitPath(path string) ([]string, error) {
	var segs []string
	for seg := range strings.SplitSeq(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// checkSegment rejects sanitized segments that would still address
// something other than a named child.
func checkSegment(seg string) (string, error) {
	switch seg {
	case "", ".", "..":
		return "", fmt.Errorf("%w: segment %q", ErrInvalidPath, seg)
	}
	return seg, nil
}

// baseName returns the last segment of a key.
func baseName(key string) string {
	return key[strings.LastIndex(key, "/")+1:]
}
