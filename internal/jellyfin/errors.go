package jellyfin

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when the configured user does not exist on the server.
	ErrUserNotFound = errors.New("user not found")

	// ErrLibraryNotFound is returned when a source library does not exist for the user.
	ErrLibraryNotFound = errors.New("library not found")
)

// StatusError reports a non-success HTTP response from the server.
type StatusError struct {
	Op   string // method and path of the failed request
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}
