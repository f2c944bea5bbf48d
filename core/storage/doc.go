// Package storage implements a flat single-directory file store: list,
// save, read, and delete regular files, plus extension-based type
// classification and human-readable size formatting for the UI layer.
//
// Names are validated before touching the filesystem, so a stored file
// can only ever live directly under the configured directory.
package storage
