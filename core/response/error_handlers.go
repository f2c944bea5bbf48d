package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filebox/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ConvertToHTTPError converts any error to an HTTPError.
// HTTPError values pass through; errors implementing StatusCode map to the
// predefined error for their status; everything else becomes a 500 with the
// original error attached as cause.
func ConvertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statusCode); ok {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}

	return baseErr.WithError(err)
}

// ErrorHandler is the default error handler that returns plain text errors.
// It checks for HTTPError type first, then the statusCode interface, and
// defaults to 500.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ConvertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}
