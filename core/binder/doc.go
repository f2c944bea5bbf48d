// Package binder extracts request data into Go structs using struct tags.
// The form binder handles both application/x-www-form-urlencoded and
// multipart/form-data bodies, including uploaded files.
package binder
