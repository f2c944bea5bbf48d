package main

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/filebox/core/response"
	"github.com/dmitrymomot/filebox/core/router"
)

// ErrorPageData is the data structure for rendered error pages.
type ErrorPageData struct {
	Title      string
	StatusCode int
	Message    string
}

// errorHandler renders HTML error pages for handler errors, routing
// errors, and recovered panics.
func errorHandler(tmpl *template.Template) func(ctx *Context, err error) {
	return func(ctx *Context, err error) {
		var httpErr response.HTTPError
		switch {
		case errors.Is(err, router.ErrNotFound):
			httpErr = response.ErrNotFound
		case errors.Is(err, router.ErrMethodNotAllowed):
			httpErr = response.ErrMethodNotAllowed
		default:
			httpErr = response.ConvertToHTTPError(err)
		}

		data := ErrorPageData{
			Title:      httpErr.Code,
			StatusCode: httpErr.Status,
			Message:    httpErr.Message,
		}
		if data.Message == "" {
			data.Message = http.StatusText(httpErr.Status)
		}

		w := ctx.ResponseWriter()

		// Prevent double-writing responses which causes HTTP protocol errors
		if ww, ok := w.(interface{ Written() bool }); ok && ww.Written() {
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(data.StatusCode)

		if err := tmpl.Execute(w, data); err != nil {
			// Fallback to plain text if the template fails
			http.Error(w, data.Message, data.StatusCode)
		}
	}
}
