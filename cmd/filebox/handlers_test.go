package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filebox/core/cookie"
	"github.com/dmitrymomot/filebox/core/handler"
	"github.com/dmitrymomot/filebox/core/router"
	"github.com/dmitrymomot/filebox/core/storage"
)

const testCookieSecret = "test-secret-key-32-characters!!!"

type testApp struct {
	router router.Router[*Context]
	store  *storage.Local
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppLimit(t, 10<<20)
}

func newTestAppLimit(t *testing.T, maxUpload int64) *testApp {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.New(t.TempDir(), storage.WithLogger(log))
	require.NoError(t, err)

	cookieMgr, err := cookie.New([]string{testCookieSecret})
	require.NoError(t, err)

	tmpls, err := loadTemplates("templates")
	require.NoError(t, err)

	r := router.New[*Context](
		router.WithContextFactory[*Context](newContext(cookieMgr, log)),
		router.WithErrorHandler[*Context](errorHandler(tmpls.error)),
	)
	r.Get("/", indexHandler(store, tmpls.index))
	r.Post("/upload", uploadHandler(store, maxUpload, log))
	r.Get("/preview/{filename}", previewHandler(store, tmpls.preview))
	r.Get("/download/{filename}", downloadHandler(store, log))
	r.Get("/delete/{filename}", deleteHandler(store, log))

	return &testApp{router: r, store: store}
}

// do runs a request, carrying over cookies from a previous response for
// flash message assertions.
func (a *testApp) do(t *testing.T, method, target string, body *bytes.Buffer, contentType string, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, body)
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if prev != nil {
		for _, c := range prev.Result().Cookies() {
			if c.MaxAge >= 0 {
				r.AddCookie(c)
			}
		}
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, r)
	return w
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestIndex(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No files yet")
		assert.Contains(t, w.Body.String(), "0 B")
	})

	t.Run("lists stored files with sizes", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("notes.txt", strings.NewReader("hello")))

		w := app.do(t, http.MethodGet, "/", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "notes.txt")
		assert.Contains(t, w.Body.String(), "5.00 B")
		assert.Contains(t, w.Body.String(), "1 file(s)")
	})
}

func TestUpload(t *testing.T) {
	t.Run("stores file under normalized name", func(t *testing.T) {
		app := newTestApp(t)
		body, contentType := multipartUpload(t, "фото.jpg", "image bytes")

		w := app.do(t, http.MethodPost, "/upload", body, contentType, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Result().Header.Get("Location"))

		files, err := app.store.List()
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9_-]+\.jpg$`), files[0].Name)

		// Flash shows up on the next page load
		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "File uploaded as")
	})

	t.Run("overwrites existing file silently", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("doc.txt", strings.NewReader("old content here")))

		body, contentType := multipartUpload(t, "doc.txt", "new")
		w := app.do(t, http.MethodPost, "/upload", body, contentType, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)

		content, err := app.store.ReadText("doc.txt")
		require.NoError(t, err)
		assert.Equal(t, "new", content)
	})

	t.Run("oversized upload flashes the limit", func(t *testing.T) {
		app := newTestAppLimit(t, 1024)
		body, contentType := multipartUpload(t, "big.bin", strings.Repeat("x", 4096))

		w := app.do(t, http.MethodPost, "/upload", body, contentType, nil)
		require.Equal(t, http.StatusSeeOther, w.Code)

		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "File exceeds the 1.00 KB upload limit")

		files, err := app.store.List()
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing file part flashes error", func(t *testing.T) {
		app := newTestApp(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("other", "x"))
		require.NoError(t, mw.Close())

		w := app.do(t, http.MethodPost, "/upload", &buf, mw.FormDataContentType(), nil)
		require.Equal(t, http.StatusSeeOther, w.Code)

		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "No file selected")
	})

	t.Run("flash does not repeat after display", func(t *testing.T) {
		app := newTestApp(t)
		body, contentType := multipartUpload(t, "a.txt", "x")

		w := app.do(t, http.MethodPost, "/upload", body, contentType, nil)
		first := app.do(t, http.MethodGet, "/", nil, "", w)
		require.Contains(t, first.Body.String(), "File uploaded as")

		second := app.do(t, http.MethodGet, "/", nil, "", first)
		assert.NotContains(t, second.Body.String(), "File uploaded as")
	})
}

func TestPreview(t *testing.T) {
	t.Run("text file renders content", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("code.py", strings.NewReader("print('hi')")))

		w := app.do(t, http.MethodGet, "/preview/code.py", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "print(&#39;hi&#39;)")
	})

	t.Run("image renders inline tag", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("pic.png", strings.NewReader("fake png")))

		w := app.do(t, http.MethodGet, "/preview/pic.png", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<img src="/download/pic.png"`)
	})

	t.Run("missing text file shows error on page", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/preview/absent.txt", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "File not found")
	})

	t.Run("unknown type offers download", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("data.bin", strings.NewReader("x")))

		w := app.do(t, http.MethodGet, "/preview/data.bin", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No inline preview")
	})
}

func TestDownload(t *testing.T) {
	t.Run("existing file downloads as attachment", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("report.txt", strings.NewReader("report body")))

		w := app.do(t, http.MethodGet, "/download/report.txt", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="report.txt"`)
		assert.Equal(t, "report body", w.Body.String())
	})

	t.Run("missing file renders error page with notice queued", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/download/absent.txt", nil, "", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "File not found")

		// The flash survives to the next listing visit
		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "Error downloading file")
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the file", func(t *testing.T) {
		app := newTestApp(t)
		require.NoError(t, app.store.Save("gone.txt", strings.NewReader("x")))

		w := app.do(t, http.MethodGet, "/delete/gone.txt", nil, "", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Result().Header.Get("Location"))
		assert.False(t, app.store.Exists("gone.txt"))

		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "deleted successfully")
	})

	t.Run("missing file redirects instead of failing", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/delete/absent.txt", nil, "", nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Less(t, w.Code, 500)

		next := app.do(t, http.MethodGet, "/", nil, "", w)
		assert.Contains(t, next.Body.String(), "File not found")
	})
}

func TestErrorPages(t *testing.T) {
	t.Run("unknown route renders 404 page", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/nope", nil, "", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "404")
	})

	t.Run("wrong method renders 405 page", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/upload", nil, "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("error after partial write leaves the response alone", func(t *testing.T) {
		app := newTestApp(t)
		app.router.Get("/stream", func(ctx *Context) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("partial"))
				return errors.New("stream interrupted")
			}
		})

		w := app.do(t, http.MethodGet, "/stream", nil, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}
