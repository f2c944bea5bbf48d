package main

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/filebox/core/handler"
	"github.com/dmitrymomot/filebox/core/logger"
	"github.com/dmitrymomot/filebox/core/response"
	"github.com/dmitrymomot/filebox/core/storage"
	"github.com/dmitrymomot/filebox/pkg/filename"
)

// Request types for form binding

type UploadRequest struct {
	File *multipart.FileHeader `file:"file"`
}

// Template data structures

type FileView struct {
	Name string
	Size string
	Type storage.FileType
}

type IndexPageData struct {
	Title     string
	Files     []FileView
	FileCount int
	TotalSize string
	Flashes   []Flash
}

type PreviewPageData struct {
	Title   string
	Name    string
	Size    string
	Type    storage.FileType
	Content string
	HasText bool
	ReadErr string
	Flashes []Flash
}

// Page handlers

func indexHandler(store *storage.Local, tmpl *template.Template) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		files, err := store.List()
		if err != nil {
			// Degrade to an empty listing with a notice instead of an
			// error page; the page itself is still useful for uploads.
			ctx.Flash("error", fmt.Sprintf("Error listing files: %v", err))
		}

		views := make([]FileView, 0, len(files))
		names := make([]string, 0, len(files))
		for _, f := range files {
			views = append(views, FileView{
				Name: f.Name,
				Size: storage.FormatSize(f.Size),
				Type: f.Type,
			})
			names = append(names, f.Name)
		}

		return response.Template(tmpl, IndexPageData{
			Title:     "Files",
			Files:     views,
			FileCount: len(views),
			TotalSize: storage.FormatSize(store.TotalSize(names)),
			Flashes:   ctx.PopFlashes(),
		})
	}
}

func previewHandler(store *storage.Local, tmpl *template.Template) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		name := ctx.Param("filename")

		data := PreviewPageData{
			Title: name,
			Name:  name,
			Size:  storage.FormatSize(store.Size(name)),
			Type:  storage.Classify(name),
		}

		if data.Type == storage.TypeText {
			content, err := store.ReadText(name)
			switch {
			case err == nil:
				data.Content = content
				data.HasText = true
			case errors.Is(err, storage.ErrNotFound):
				data.ReadErr = "File not found"
			case errors.Is(err, storage.ErrNotText):
				data.ReadErr = "File is not valid UTF-8 text"
			default:
				data.ReadErr = fmt.Sprintf("Error reading file: %v", err)
			}
		}

		data.Flashes = ctx.PopFlashes()
		return response.Template(tmpl, data)
	}
}

// Action handlers (POST + redirect)

func uploadHandler(store *storage.Local, maxSize int64, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		r := ctx.Request()
		r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, maxSize)

		var req UploadRequest
		if err := ctx.Bind(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				ctx.Flash("error", fmt.Sprintf("File exceeds the %s upload limit", storage.FormatSize(maxSize)))
			} else {
				ctx.Flash("error", "Invalid upload request")
			}
			return response.RedirectSeeOther("/")
		}

		if req.File == nil || req.File.Filename == "" {
			ctx.Flash("error", "No file selected")
			return response.RedirectSeeOther("/")
		}

		name := filename.Normalize(req.File.Filename)

		src, err := req.File.Open()
		if err != nil {
			ctx.Flash("error", "Failed to read uploaded file")
			return response.RedirectSeeOther("/")
		}
		defer src.Close()

		if err := store.Save(name, src); err != nil {
			log.Error("upload failed",
				logger.File(name),
				logger.Error(err),
			)
			ctx.Flash("error", "Failed to save file")
			return response.RedirectSeeOther("/")
		}

		log.Info("file uploaded",
			logger.File(name),
			slog.String("original", req.File.Filename),
			slog.Int64("size", req.File.Size),
		)
		ctx.Flash("success", fmt.Sprintf("File uploaded as %s", name))
		return response.RedirectSeeOther("/")
	}
}

func downloadHandler(store *storage.Local, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		name := ctx.Param("filename")

		path, err := store.Path(name)
		if err != nil || !store.Exists(name) {
			// Flash first so the notice survives to the next page the user
			// visits, then let the error handler render the error page.
			log.Error("download failed", logger.File(name), logger.Error(err))
			ctx.Flash("error", "Error downloading file: file not found")
			return response.Error(response.ErrNotFound.WithMessage("File not found"))
		}

		log.Info("file downloaded", logger.File(name))
		return response.Download(path, name)
	}
}

func deleteHandler(store *storage.Local, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		name := ctx.Param("filename")

		if err := store.Delete(name); err != nil {
			if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
				ctx.Flash("error", "File not found")
			} else {
				log.Error("delete failed", logger.File(name), logger.Error(err))
				ctx.Flash("error", fmt.Sprintf("Error deleting file: %v", err))
			}
			return response.Redirect("/")
		}

		log.Info("file deleted", logger.File(name))
		ctx.Flash("success", fmt.Sprintf("File %s deleted successfully", name))
		return response.Redirect("/")
	}
}
