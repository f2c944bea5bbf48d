package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/filebox/core/handler"
)

// mux is the private implementation of the Router interface.
type mux[C handler.Context] struct {
	routes       []*route[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	parent       *mux[C] // for inline groups
	inline       bool
	registered   bool // routes exist, middleware stack is frozen
}

// route is a single registered pattern. Segments with a non-empty param
// name capture the corresponding path segment.
type route[C handler.Context] struct {
	method   string // empty matches any method
	pattern  string
	segments []segment
	handler  handler.HandlerFunc[C]
}

type segment struct {
	literal string
	param   string
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		panic(ErrNoContextFactory)
	}

	return m
}

// ServeHTTP implements the http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	fn, params, allowed := m.match(r.Method, path)

	ctx := m.newContext(ww, r, params)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// Can't send an error response anymore, just log the panic
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	if fn == nil {
		if len(allowed) > 0 {
			// Set Allow header per RFC 7231 before responding with 405
			ww.Header().Set("Allow", strings.Join(allowed, ", "))
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	if len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
		return
	}
}

// match finds the handler for a method and path. When the path is known but
// the method is not, it returns the allowed methods for the 405 response.
func (m *mux[C]) match(method, path string) (handler.HandlerFunc[C], map[string]string, []string) {
	segs := splitPath(path)

	var allowed []string
	for _, rt := range m.routes {
		params, ok := rt.matchSegments(segs)
		if !ok {
			continue
		}
		if rt.method == "" || rt.method == method {
			return rt.handler, params, nil
		}
		if !contains(allowed, rt.method) {
			allowed = append(allowed, rt.method)
		}
	}

	return nil, nil, allowed
}

func (rt *route[C]) matchSegments(segs []string) (map[string]string, bool) {
	if len(segs) != len(rt.segments) {
		return nil, false
	}

	var params map[string]string
	for i, s := range rt.segments {
		if s.param != "" {
			if params == nil {
				params = make(map[string]string, 2)
			}
			params[s.param] = segs[i]
			continue
		}
		if s.literal != segs[i] {
			return nil, false
		}
	}

	return params, true
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !validMethods[method] {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.registered {
		panic("filebox: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	// Only the additional middlewares are stored; they are chained onto the
	// parent stack at registration time.
	return &mux[C]{
		inline:       true,
		parent:       m,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes.
func (m *mux[C]) Routes() []Route {
	root := m.root()
	routes := make([]Route, 0, len(root.routes))
	for _, rt := range root.routes {
		method := rt.method
		if method == "" {
			method = "*"
		}
		routes = append(routes, Route{Method: method, Pattern: rt.pattern})
	}
	return routes
}

// root walks up the inline chain to the owning mux.
func (m *mux[C]) root() *mux[C] {
	curr := m
	for curr.inline {
		curr = curr.parent
	}
	return curr
}

// handle parses the pattern and registers the handler on the root mux.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	segments, err := parsePattern(pattern)
	if err != nil {
		panic(err)
	}

	// Inline routers bake their middleware stack into the handler now;
	// the root stack is applied per-request.
	if m.inline {
		var stack []handler.Middleware[C]
		curr := m
		for curr.inline {
			if len(curr.middlewares) > 0 {
				stack = append(append([]handler.Middleware[C]{}, curr.middlewares...), stack...)
			}
			curr = curr.parent
		}
		if len(stack) > 0 {
			fn = chain(stack, fn)
		}
	}

	root := m.root()
	root.registered = true
	root.routes = append(root.routes, &route[C]{
		method:   method,
		pattern:  pattern,
		segments: segments,
		handler:  fn,
	})
}

// parsePattern splits a route pattern into match segments.
// Parameters use the "{name}" form and must be unique within a pattern.
func parsePattern(pattern string) ([]segment, error) {
	if len(pattern) == 0 || pattern[0] != '/' {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	raw := splitPath(pattern)
	segments := make([]segment, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, s := range raw {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			name := s[1 : len(s)-1]
			if name == "" {
				return nil, fmt.Errorf("%w: empty parameter in '%s'", ErrInvalidPattern, pattern)
			}
			if seen[name] {
				return nil, fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateParam, name, pattern)
			}
			seen[name] = true
			segments = append(segments, segment{param: name})
			continue
		}
		segments = append(segments, segment{literal: s})
	}

	return segments, nil
}

// splitPath breaks a path into its segments. "/" yields a single empty
// segment so the root pattern matches only the root path.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return strings.Split(path, "/")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// validMethods lists the HTTP methods accepted by Method.
var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodConnect: true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}
