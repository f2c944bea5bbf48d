package binder

import "errors"

var (
	// ErrUnsupportedTargetType is returned when the bind target is not a
	// non-nil pointer to a struct.
	ErrUnsupportedTargetType = errors.New("binder: target must be a non-nil pointer to a struct")

	// ErrUnsupportedContentType is returned when the request content type
	// does not match the binder.
	ErrUnsupportedContentType = errors.New("binder: unsupported content type")

	// ErrInvalidFormData is returned when the request body cannot be parsed
	// as form data.
	ErrInvalidFormData = errors.New("binder: invalid form data")

	// ErrUnsupportedFieldType is returned when a tagged struct field has a
	// type the binder cannot populate.
	ErrUnsupportedFieldType = errors.New("binder: unsupported field type")
)
