package storage

import "errors"

var (
	// ErrEmptyDir is returned when a store is created without a directory.
	ErrEmptyDir = errors.New("storage directory is required")

	// ErrInvalidName is returned for names that could escape the store.
	ErrInvalidName = errors.New("invalid file name")

	// ErrNotFound is returned when the named file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNotText is returned by ReadText for non-UTF-8 content.
	ErrNotText = errors.New("file is not valid text")
)
