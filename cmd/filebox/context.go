package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/filebox/core/binder"
	"github.com/dmitrymomot/filebox/core/cookie"
)

const flashCookieKey = "notices"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Context is the per-request context carrying flash message support and
// form binding on top of the base handler contract.
type Context struct {
	w       http.ResponseWriter
	r       *http.Request
	params  map[string]string
	cookies *cookie.Manager
	log     *slog.Logger
	flashes []Flash
}

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

func (c *Context) Request() *http.Request {
	return c.r
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the URL parameter for the given key.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Bind populates v from the request's form data. Uploads arrive as
// multipart/form-data, so the form binder covers every route here.
func (c *Context) Bind(v any) error {
	return binder.Form()(c.r, v)
}

// Flash queues a notice for the next rendered page. Notices survive a
// redirect via a signed one-shot cookie.
func (c *Context) Flash(kind, message string) {
	c.flashes = append(c.flashes, Flash{Kind: kind, Message: message})
	if err := c.cookies.SetFlash(c.w, flashCookieKey, c.flashes); err != nil {
		c.log.Warn("failed to set flash cookie", slog.Any("error", err))
	}
}

// PopFlashes returns pending notices and clears them. Notices queued
// earlier in the same request are included, so a handler can flash and
// render in one round trip.
func (c *Context) PopFlashes() []Flash {
	var stored []Flash
	if err := c.cookies.GetFlash(c.w, c.r, flashCookieKey, &stored); err != nil &&
		!errors.Is(err, cookie.ErrCookieNotFound) {
		c.log.Debug("failed to read flash cookie", slog.Any("error", err))
	}

	// Same-request notices come after redirected ones and must not repeat:
	// Flash wrote them to the cookie, so clear it now that they render.
	if len(c.flashes) > 0 {
		c.cookies.DeleteFlash(c.w, flashCookieKey)
		stored = append(stored, c.flashes...)
		c.flashes = nil
	}
	return stored
}

// newContext creates the request context factory bound to shared
// application services.
func newContext(cookies *cookie.Manager, log *slog.Logger) func(http.ResponseWriter, *http.Request, map[string]string) *Context {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
		return &Context{
			w:       w,
			r:       r,
			params:  params,
			cookies: cookies,
			log:     log,
		}
	}
}
