package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSecret is returned when the manager is created without secrets.
	ErrNoSecret = errors.New("at least one secret is required")

	// ErrSecretTooShort is returned for secrets below the minimum length.
	ErrSecretTooShort = errors.New("secret too short")

	// ErrCookieNotFound is returned when the request carries no such cookie.
	ErrCookieNotFound = errors.New("cookie not found")

	// ErrInvalidFormat is returned when a signed value is malformed.
	ErrInvalidFormat = errors.New("invalid signed cookie format")

	// ErrInvalidSignature is returned when no secret verifies the signature.
	ErrInvalidSignature = errors.New("invalid cookie signature")
)

// ErrCookieTooLarge is returned when the serialized cookie exceeds the
// manager's size limit.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q is %d bytes, exceeds limit of %d", e.Name, e.Size, e.Max)
}
