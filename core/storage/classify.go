package storage

import (
	"path/filepath"
	"strings"
)

// FileType groups stored files by how the UI can present them.
type FileType string

const (
	// TypeText files render inline as escaped plain text.
	TypeText FileType = "text"
	// TypeImage files render as <img> elements.
	TypeImage FileType = "image"
	// TypeVideo files render in a <video> player.
	TypeVideo FileType = "video"
	// TypeUnknown files are download-only.
	TypeUnknown FileType = "unknown"
)

var typeByExt = map[string]FileType{
	".txt":  TypeText,
	".py":   TypeText,
	".cpp":  TypeText,
	".h":    TypeText,
	".json": TypeText,
	".xml":  TypeText,
	".jpg":  TypeImage,
	".png":  TypeImage,
	".mp4":  TypeVideo,
}

// Classify determines a file's presentation type from its extension.
func Classify(name string) FileType {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := typeByExt[ext]; ok {
		return t
	}
	return TypeUnknown
}
