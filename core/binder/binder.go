package binder

import "net/http"

// Binder populates a target struct from an HTTP request.
type Binder func(r *http.Request, v any) error
