package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/fsname/pkg/fsname"
	"github.com/dmitrymomot/fsname/pkg/logger"
)

// LocalStorage implements Storage interface for local filesystem.
// All operations are confined to baseDir to prevent path traversal attacks.
// Names are sanitized with a Linux policy unless WithLocalPolicy says otherwise.
type LocalStorage struct {
	baseDir       string        // Absolute path - all files stored within this directory
	baseURL       string        // URL prefix for serving files (e.g., "/files/")
	uploadTimeout time.Duration // Optional timeout to prevent hanging uploads
	names         namer
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout sets the timeout for upload operations.
// If not set, relies on context deadline from caller.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// WithLocalPolicy sets the naming policy applied to every path segment.
// Use it when the directory is shared with another system, e.g. a synced
// OneDrive folder.
func WithLocalPolicy(p fsname.Policy) LocalOption {
	return func(s *LocalStorage) {
		s.names.policy = p
	}
}

// WithLocalLogger sets the logger used to report renamed paths.
func WithLocalLogger(l *slog.Logger) LocalOption {
	return func(s *LocalStorage) {
		if l != nil {
			s.names.log = l
		}
	}
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to absolute path and created if it doesn't exist.
// baseURL is used for generating public URLs (e.g., "/files/").
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
		names: namer{
			policy: fsname.NewLinux(),
			log:    logger.Discard(),
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.names.policy == nil {
		return nil, fmt.Errorf("%w: nil naming policy", ErrInvalidConfig)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return s, nil
}

// Save stores the content of r under the sanitized form of path.
// Uses buffered I/O with context cancellation support and cleans up partial
// files on errors.
func (s *LocalStorage) Save(ctx context.Context, path string, r io.Reader) (*File, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if r == nil {
		return nil, ErrNilReader
	}

	key, err := s.names.fileKey(path)
	if err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}

	src, mimeType, err := sniff(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	h := sha256.New()
	src = io.TeeReader(src, h)

	created, err := s.mkdirParents(filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		removeEmptyDirs(created)
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = dst.Close() }()

	// Manual buffered copy with context checking - allows cancellation during large uploads
	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			_ = dst.Close()
			_ = os.Remove(absPath)
			removeEmptyDirs(created)
			return nil, ctx.Err()
		default:
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			nw, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				_ = dst.Close()
				_ = os.Remove(absPath)
			removeEmptyDirs(created)
				return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = dst.Close()
			_ = os.Remove(absPath)
			removeEmptyDirs(created)
			return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	filename := baseName(key)
	return &File{
		Filename:     filename,
		Size:         written,
		MIMEType:     mimeType,
		Extension:    filepath.Ext(filename),
		Checksum:     hex.EncodeToString(h.Sum(nil)),
		AbsolutePath: absPath,
		RelativePath: key,
	}, nil
}

// Delete removes a single file.
// Verifies the target is a file, not a directory, to prevent accidental data loss.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	key, err := s.names.fileKey(path)
	if err != nil {
		return err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s, use DeleteDir instead", ErrIsDirectory, key)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}

	return nil
}

// DeleteDir recursively removes a directory and all its contents.
// The storage root itself cannot be removed.
func (s *LocalStorage) DeleteDir(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	key, err := s.names.dirKey(path)
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("%w: refusing to delete storage root", ErrInvalidPath)
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, key)
	}

	if err := os.RemoveAll(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteDirectory, err)
	}

	return nil
}

// Exists checks if a file or directory exists.
// The path is tried as a file name first, then as a folder name, since the
// two may sanitize differently.
// Returns false for invalid paths or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	if key, err := s.names.fileKey(path); err == nil && s.stat(key) {
		return true
	}
	key, err := s.names.dirKey(path)
	return err == nil && key != "" && s.stat(key)
}

func (s *LocalStorage) stat(key string) bool {
	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(absPath)
	return err == nil
}

// List returns all entries in a directory (non-recursive).
// Checks context cancellation periodically during iteration to handle large directories.
func (s *LocalStorage) List(ctx context.Context, dir string) ([]Entry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	key, err := s.names.dirKey(dir)
	if err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, key)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, key)
	}

	dirEntries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := dirEntry.Info()
		if err != nil {
			continue // Skip entries we can't read
		}

		entry := Entry{
			Name:  dirEntry.Name(),
			Path:  strings.TrimPrefix(key+"/"+dirEntry.Name(), "/"),
			IsDir: dirEntry.IsDir(),
		}
		if !dirEntry.IsDir() {
			entry.Size = info.Size()
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// URL returns the public URL for a file stored under path.
func (s *LocalStorage) URL(path string) string {
	key, err := s.names.fileKey(path)
	if err != nil {
		return ""
	}
	return s.baseURL + key
}

// resolvePath validates and resolves a key within the base directory.
// Keys are already sanitized; this is the last line against escaping baseDir.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}

	return absPath, nil
}

// mkdirParents creates dir and any missing parents below the base
// directory. It returns the directories it created, deepest first.
func (s *LocalStorage) mkdirParents(dir string) ([]string, error) {
	var missing []string
	for d := dir; d != s.baseDir && d != filepath.Dir(d); d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		removeEmptyDirs(missing)
		return nil, err
	}
	return missing, nil
}

// removeEmptyDirs removes dirs in order, stopping at the first one that
// is not empty (another writer got there first).
func removeEmptyDirs(dirs []string) {
	for _, d := range dirs {
		if err := os.Remove(d); err != nil {
			return
		}
	}
}
