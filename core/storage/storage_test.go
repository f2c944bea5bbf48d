package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filebox/core/storage"
)

func newStore(t *testing.T) *storage.Local {
	t.Helper()
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNew(t *testing.T) {
	t.Run("empty dir is rejected", func(t *testing.T) {
		_, err := storage.New("")
		assert.ErrorIs(t, err, storage.ErrEmptyDir)
	})

	t.Run("does not touch the filesystem", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "not-created-yet")
		_, err := storage.New(dir)
		require.NoError(t, err)

		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestLocal_List(t *testing.T) {
	t.Run("empty directory lists to empty slice", func(t *testing.T) {
		store := newStore(t)

		files, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("creates missing root directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "uploads")
		store, err := storage.New(dir)
		require.NoError(t, err)

		_, err = store.List()
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("lists regular files sorted by name", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("b.txt", strings.NewReader("bb")))
		require.NoError(t, store.Save("a.txt", strings.NewReader("a")))

		files, err := store.List()
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "a.txt", files[0].Name)
		assert.Equal(t, int64(1), files[0].Size)
		assert.Equal(t, storage.TypeText, files[0].Type)
		assert.Equal(t, "b.txt", files[1].Name)
	})

	t.Run("skips subdirectories", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("file.txt", strings.NewReader("x")))
		require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "subdir"), 0o755))

		files, err := store.List()
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "file.txt", files[0].Name)
	})
}

func TestLocal_Save(t *testing.T) {
	t.Run("writes content", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("hello.txt", strings.NewReader("hello world")))

		content, err := store.ReadText("hello.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello world", content)
	})

	t.Run("silently replaces existing file", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("f.txt", strings.NewReader("first version")))
		require.NoError(t, store.Save("f.txt", strings.NewReader("second")))

		content, err := store.ReadText("f.txt")
		require.NoError(t, err)
		assert.Equal(t, "second", content)
	})

	t.Run("rejects names with separators", func(t *testing.T) {
		store := newStore(t)
		for _, name := range []string{"../escape.txt", "a/b.txt", `a\b.txt`, "..", "", "."} {
			err := store.Save(name, strings.NewReader("x"))
			assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
		}
	})
}

func TestLocal_ReadText(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := newStore(t)
		_, err := store.ReadText("nope.txt")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("rejects non-utf8 content", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("bin.txt", strings.NewReader("\xff\xfe\x00\x01")))

		_, err := store.ReadText("bin.txt")
		assert.ErrorIs(t, err, storage.ErrNotText)
	})
}

func TestLocal_Delete(t *testing.T) {
	t.Run("removes the file", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("gone.txt", strings.NewReader("x")))
		require.NoError(t, store.Delete("gone.txt"))
		assert.False(t, store.Exists("gone.txt"))
	})

	t.Run("missing file", func(t *testing.T) {
		store := newStore(t)
		assert.ErrorIs(t, store.Delete("nope.txt"), storage.ErrNotFound)
	})
}

func TestLocal_SizeAndTotal(t *testing.T) {
	t.Run("size of missing file is zero", func(t *testing.T) {
		store := newStore(t)
		assert.Equal(t, int64(0), store.Size("nope.txt"))
	})

	t.Run("total size sums named files", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("a.txt", strings.NewReader("12345")))
		require.NoError(t, store.Save("b.txt", strings.NewReader("123")))

		assert.Equal(t, int64(8), store.TotalSize([]string{"a.txt", "b.txt"}))
	})

	t.Run("unknown names count as zero", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save("a.txt", strings.NewReader("12345")))

		assert.Equal(t, int64(5), store.TotalSize([]string{"a.txt", "missing.txt"}))
		assert.Equal(t, int64(0), store.TotalSize(nil))
	})
}

func TestLocal_Path(t *testing.T) {
	store := newStore(t)

	t.Run("resolves inside the root", func(t *testing.T) {
		path, err := store.Path("file.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(store.Dir(), "file.txt"), path)
	})

	t.Run("rejects traversal attempts", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../x"} {
			_, err := store.Path(name)
			assert.ErrorIs(t, err, storage.ErrInvalidName, "name %q", name)
		}
	})
}
