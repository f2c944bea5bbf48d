package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Applications provide their own implementation carrying whatever
// request-scoped state they need (flash messages, binding, etc.).
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
