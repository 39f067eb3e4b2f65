package file

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

// File represents stored file metadata.
type File struct {
	Filename     string // Sanitized base name as stored
	Size         int64
	MIMEType     string
	Extension    string
	Checksum     string // Hex-encoded SHA-256 of the stored content
	AbsolutePath string
	RelativePath string // Sanitized key relative to the storage root
}

// Entry represents a file or directory entry.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Storage interface for different backends.
// Paths are slash-separated. Every segment is sanitized with the storage's
// naming policy before it touches the backend, so callers may pass names
// exactly as users typed them.
type Storage interface {
	// Save stores the content of r under path and returns metadata.
	Save(ctx context.Context, path string, r io.Reader) (*File, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// DeleteDir recursively removes a directory and all its contents.
	DeleteDir(ctx context.Context, path string) error
	// Exists checks if a file or directory exists.
	Exists(ctx context.Context, path string) bool
	// List returns all entries in a directory (non-recursive).
	List(ctx context.Context, dir string) ([]Entry, error)
	// URL returns the public URL for a file, or "" if path cannot be stored.
	URL(path string) string
}

const defaultMIMEType = "application/octet-stream"

var (
	imageMIMETypes = map[string]bool{
		"image/jpeg":    true,
		"image/jpg":     true,
		"image/png":     true,
		"image/gif":     true,
		"image/webp":    true,
		"image/svg+xml": true,
		"image/bmp":     true,
		"image/tiff":    true,
		"image/heic":    true,
		"image/heif":    true,
		"image/avif":    true,
		"image/jxl":     true,
	}

	videoMIMETypes = map[string]bool{
		"video/mp4":        true,
		"video/mpeg":       true,
		"video/ogg":        true,
		"video/webm":       true,
		"video/quicktime":  true,
		"video/x-msvideo":  true,
		"video/x-flv":      true,
		"video/3gpp":       true,
		"video/x-matroska": true,
		"video/av1":        true,
	}

	audioMIMETypes = map[string]bool{
		"audio/mpeg":   true,
		"audio/ogg":    true,
		"audio/wav":    true,
		"audio/wave":   true,
		"audio/webm":   true,
		"audio/aac":    true,
		"audio/mp4":    true,
		"audio/x-m4a":  true,
		"audio/m4a":    true,
		"audio/opus":   true,
		"audio/flac":   true,
		"audio/x-flac": true,
		"audio/3gpp":   true,
		"audio/3gpp2":  true,
	}
)

// IsImage reports whether the stored content is an image.
// The sniffed MIME type wins; the extension is consulted only when sniffing
// produced nothing more specific than application/octet-stream.
func (f *File) IsImage() bool {
	if f == nil {
		return false
	}
	if !f.genericMIME() {
		return imageMIMETypes[f.MIMEType]
	}
	switch strings.ToLower(f.Extension) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp", ".tiff", ".tif", ".heic", ".heif", ".avif", ".jxl":
		return true
	default:
		return false
	}
}

// IsVideo reports whether the stored content is a video.
func (f *File) IsVideo() bool {
	if f == nil {
		return false
	}
	if !f.genericMIME() {
		return videoMIMETypes[f.MIMEType]
	}
	switch strings.ToLower(f.Extension) {
	case ".mp4", ".mpeg", ".mpg", ".ogg", ".webm", ".mov", ".avi", ".flv", ".3gp", ".mkv", ".av1":
		return true
	default:
		return false
	}
}

// IsAudio reports whether the stored content is audio.
func (f *File) IsAudio() bool {
	if f == nil {
		return false
	}
	if !f.genericMIME() {
		return audioMIMETypes[f.MIMEType]
	}
	switch strings.ToLower(f.Extension) {
	case ".mp3", ".ogg", ".wav", ".webm", ".aac", ".mp4", ".m4a", ".opus", ".flac", ".3gp", ".3g2":
		return true
	default:
		return false
	}
}

// IsPDF reports whether the stored content is a PDF.
func (f *File) IsPDF() bool {
	if f == nil {
		return false
	}
	if f.MIMEType == "application/pdf" {
		return true
	}
	return f.genericMIME() && strings.ToLower(f.Extension) == ".pdf"
}

func (f *File) genericMIME() bool {
	return f.MIMEType == "" || f.MIMEType == defaultMIMEType
}

// sniff detects the MIME type from the first 512 bytes of r without
// consuming them. The returned reader yields the full content.
// Uses http.DetectContentType (magic bytes) rather than trusting the name.
func sniff(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, "", err
	}
	if len(head) == 0 {
		return br, defaultMIMEType, nil
	}
	return br, http.DetectContentType(head), nil
}

// countingReader records how many bytes passed through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
