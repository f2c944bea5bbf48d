package response

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/filebox/core/handler"
)

// File creates a response that serves a static file from the filesystem.
// It automatically detects the content type and supports range requests.
// Returns 404 if the file doesn't exist or is a directory.
func File(path string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		// Prevent directory traversal attacks like ../../etc/passwd
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		// http.ServeFile handles Range requests, If-Modified-Since, and
		// content type detection
		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// Download creates a response that forces the browser to download the file
// instead of displaying it inline. If filename is empty, uses the base name
// of the file path.
func Download(path string, filename string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		downloadName := filename
		if downloadName == "" {
			downloadName = filepath.Base(cleanPath)
		}

		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, sanitizeHeaderFilename(downloadName)))

		contentType := mime.TypeByExtension(filepath.Ext(cleanPath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)

		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// FileReader creates a response that streams data from an io.Reader as a
// downloadable file. Useful for dynamically produced content.
func FileReader(reader io.Reader, filename string, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		name := sanitizeHeaderFilename(filename)

		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))

		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(name))
			if contentType == "" {
				contentType = "application/octet-stream"
			}
		}
		w.Header().Set("Content-Type", contentType)

		w.WriteHeader(http.StatusOK)
		_, err := io.Copy(w, reader)
		return err
	}
}

// sanitizeHeaderFilename prevents HTTP header injection through newlines
// and quotes in attachment names.
func sanitizeHeaderFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\n", "")
	filename = strings.ReplaceAll(filename, "\r", "")
	return strings.ReplaceAll(filename, "\"", "'")
}
