package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/filebox/core/handler"
)

// Option configures the router during construction.
type Option[C handler.Context] func(*mux[C])

// WithContextFactory sets the factory used to build the per-request context.
// A factory is required; New panics without one.
func WithContextFactory[C handler.Context](factory func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = factory
	}
}

// WithErrorHandler sets a custom error handler for the router.
// It receives every handler error, routing error, and recovered panic.
func WithErrorHandler[C handler.Context](eh handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if eh != nil {
			m.errorHandler = eh
		}
	}
}

// WithMiddleware appends global middleware applied to every route.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithLogger sets the logger used for panics that occur after the
// response has been written.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
