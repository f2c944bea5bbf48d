// Package router provides a type-safe HTTP router with generic context
// support, middleware chaining, and centralized error handling.
//
// Routes are plain method+pattern pairs; path parameters use the "{name}"
// form and are available through Context.Param:
//
//	r := router.New[*Context](
//		router.WithContextFactory[*Context](newContext()),
//		router.WithErrorHandler[*Context](errorHandler),
//	)
//	r.Get("/", indexHandler)
//	r.Get("/preview/{filename}", previewHandler)
//	r.Post("/upload", uploadHandler)
//
// Handlers return a response function instead of writing directly. Any
// error returned while rendering, any routing failure (404/405), and any
// recovered panic is passed to the configured error handler, so a response
// is always produced exactly once.
package router
