package filename_test

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filebox/pkg/filename"
)

func TestNormalize_SafeNames(t *testing.T) {
	t.Run("plain ascii name passes through", func(t *testing.T) {
		assert.Equal(t, "report.txt", filename.Normalize("report.txt"))
	})

	t.Run("extension is lowercased", func(t *testing.T) {
		assert.Equal(t, "photo.jpg", filename.Normalize("photo.JPG"))
	})

	t.Run("spaces become underscores", func(t *testing.T) {
		assert.Equal(t, "my_report.txt", filename.Normalize("my report.txt"))
	})

	t.Run("underscore runs collapse", func(t *testing.T) {
		assert.Equal(t, "a_b.txt", filename.Normalize("a  _  b.txt"))
	})

	t.Run("idempotent on already safe names", func(t *testing.T) {
		for _, name := range []string{"report.txt", "a_b-c.json", "video.mp4", "notes"} {
			once := filename.Normalize(name)
			assert.Equal(t, once, filename.Normalize(once), "input %q", name)
		}
	})
}

func TestNormalize_Cyrillic(t *testing.T) {
	t.Run("cyrillic base transliterates", func(t *testing.T) {
		got := filename.Normalize("фото.jpg")
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9_-]+\.jpg$`), got)
	})

	t.Run("mixed cyrillic and latin", func(t *testing.T) {
		got := filename.Normalize("отчёт report.txt")
		assert.True(t, strings.HasSuffix(got, ".txt"))
		assert.Contains(t, got, "report")
	})

	t.Run("digraph letters map to multi-char sequences", func(t *testing.T) {
		got := filename.Normalize("журнал.txt")
		assert.NotEmpty(t, strings.TrimSuffix(got, ".txt"))
		assert.Regexp(t, `^[A-Za-z0-9_.-]+\.txt$`, got)
	})
}

func TestNormalize_HostileInput(t *testing.T) {
	t.Run("path separators are stripped", func(t *testing.T) {
		got := filename.Normalize("../../etc/passwd")
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, "\\")
		assert.NotContains(t, got, "..")
	})

	t.Run("windows separators are stripped", func(t *testing.T) {
		got := filename.Normalize(`..\..\boot.ini`)
		assert.NotContains(t, got, "\\")
	})

	t.Run("extension only name gets a random base", func(t *testing.T) {
		got := filename.Normalize(".gitignore")
		require.True(t, strings.HasSuffix(got, ".gitignore"), "got %q", got)
		base := strings.TrimSuffix(got, ".gitignore")
		assert.Len(t, base, 8)
		assert.Regexp(t, `^[0-9a-f]{8}$`, base)
	})

	t.Run("fully unmappable name gets a random token", func(t *testing.T) {
		got := filename.Normalize("!!!@@@###")
		assert.NotEmpty(t, got)
		assert.Regexp(t, `^[0-9a-f]{8}$`, got)
	})

	t.Run("empty input gets a random token", func(t *testing.T) {
		got := filename.Normalize("")
		assert.NotEmpty(t, got)
	})

	t.Run("control characters are dropped", func(t *testing.T) {
		got := filename.Normalize("evil\r\nname.txt")
		assert.Regexp(t, `^[A-Za-z0-9_.-]+$`, got)
	})
}

func TestNormalize_Properties(t *testing.T) {
	inputs := []string{
		"report.txt", "фото.jpg", "ДОКУМЕНТ.PDF", "no extension",
		"weird   spacing  .json", "..hidden.txt", "tar.gz archive.tar",
		"émigré.txt", "数据.csv", "", ".bashrc", "a.b.c.d.txt",
	}

	for _, input := range inputs {
		got := filename.Normalize(input)

		assert.NotEmpty(t, got, "input %q", input)
		assert.Regexp(t, `^[A-Za-z0-9_.-]+$`, got, "input %q", input)
		assert.NotEqual(t, ".", got, "input %q", input)
		assert.NotEqual(t, "..", got, "input %q", input)

		if ext := filepath.Ext(input); ext != "" && !strings.ContainsAny(ext, " \\/") {
			assert.True(t, strings.HasSuffix(got, strings.ToLower(ext)),
				"input %q: got %q, want suffix %q", input, got, strings.ToLower(ext))
		}
	}
}
