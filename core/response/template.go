package response

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/filebox/core/handler"
)

// Template creates an HTML response using html/template with 200 OK status.
// The template is buffered before writing (safer, prevents partial output on error).
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateWithStatus(tmpl, data, http.StatusOK)
}

// TemplateWithStatus creates an HTML response using html/template with a
// custom status code. The template is buffered before writing.
func TemplateWithStatus(tmpl *template.Template, data any, status int) handler.Response {
	if tmpl == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
		}

		// Buffer the output first so template errors never produce a
		// half-written page.
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return err
		}
		w.WriteHeader(status)
		_, writeErr := w.Write(buf.Bytes())
		return writeErr
	}
}

// TemplateName renders a named template from a template collection
// (e.g., from ParseFiles or ParseGlob).
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	if tmpl == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if name == "" {
			return fmt.Errorf("template name is empty")
		}

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return err
		}
		w.WriteHeader(http.StatusOK)
		_, writeErr := w.Write(buf.Bytes())
		return writeErr
	}
}
