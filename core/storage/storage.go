package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// FileInfo describes a stored file for listing purposes.
type FileInfo struct {
	Name string
	Size int64
	Type FileType
}

// Local stores files as regular files inside a single directory.
// Subdirectories are never created or listed.
type Local struct {
	dir string
	log *slog.Logger
}

// New creates a Local store rooted at dir. The directory is created on
// first use rather than here, so construction never touches the disk.
func New(dir string, opts ...Option) (*Local, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}

	options := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}

	return &Local{dir: dir, log: options.log}, nil
}

// Dir returns the store's root directory.
func (l *Local) Dir() string {
	return l.dir
}

// List returns every regular file in the store, sorted by name.
// The root directory is created when missing, so a fresh deployment
// serves an empty listing instead of an error.
func (l *Local) List() ([]FileInfo, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read storage dir: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Name: entry.Name(),
			Size: l.Size(entry.Name()),
			Type: Classify(entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Size returns the size of a stored file in bytes, or 0 when the file
// cannot be stat'd. Listing pages degrade gracefully instead of failing.
func (l *Local) Size(name string) int64 {
	path, err := l.Path(name)
	if err != nil {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		l.log.Debug("stat failed", slog.String("file", name), slog.Any("error", err))
		return 0
	}
	return info.Size()
}

// TotalSize returns the combined size of the named files in bytes.
// Unknown names count as zero, matching Size.
func (l *Local) TotalSize(names []string) int64 {
	var total int64
	for _, name := range names {
		total += l.Size(name)
	}
	return total
}

// Save writes content to name inside the store, creating the root
// directory when missing. An existing file with the same name is
// silently replaced.
func (l *Local) Save(name string, content io.Reader) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// ReadText reads a stored file and returns its content as a string.
// Returns ErrNotText when the content is not valid UTF-8.
func (l *Local) ReadText(name string) (string, error) {
	path, err := l.Path(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

// Delete removes a stored file. Returns ErrNotFound when no such file
// exists.
func (l *Local) Delete(name string) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// Exists reports whether a regular file with the given name is stored.
func (l *Local) Exists(name string) bool {
	path, err := l.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Path resolves a file name to its absolute location inside the store.
// Names carrying path separators or parent references are rejected, so
// a crafted name can never escape the root directory.
func (l *Local) Path(name string) (string, error) {
	if name == "" ||
		strings.ContainsAny(name, "/\\") ||
		name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.dir, name), nil
}
