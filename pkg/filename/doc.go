// Package filename normalizes user-supplied filenames into safe ASCII
// names suitable for storage on any filesystem. Cyrillic names are
// transliterated rather than discarded, and a random token guarantees a
// non-empty result for fully hostile input.
package filename
