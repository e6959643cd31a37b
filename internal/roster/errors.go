package roster

import (
	"errors"
	"fmt"
)

// ErrStaleRefresh is returned when a refresh was overtaken by a newer one
// before it could touch the surface.
var ErrStaleRefresh = errors.New("refresh superseded by a newer selection")

// SelectionRefreshError is returned when loading posts for a selection fails.
// The selector has already been re-enabled when it is returned.
type SelectionRefreshError struct {
	UserID int
	Err    error
}

func (e *SelectionRefreshError) Error() string {
	return fmt.Sprintf("refresh selection %d: %v", e.UserID, e.Err)
}

func (e *SelectionRefreshError) Unwrap() error { return e.Err }

// PageInitError is returned when the page could not be populated at startup.
type PageInitError struct {
	Err error
}

func (e *PageInitError) Error() string {
	return fmt.Sprintf("initialize page: %v", e.Err)
}

func (e *PageInitError) Unwrap() error { return e.Err }
