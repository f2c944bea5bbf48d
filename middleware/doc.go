// Package middleware provides cross-cutting request handling: request ID
// assignment for log correlation and structured access logging.
package middleware
