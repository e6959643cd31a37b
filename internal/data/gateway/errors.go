package gateway

import (
	"errors"
	"fmt"
)

// Kind names which gateway operation failed.
type Kind string

const (
	KindEmployees Kind = "employees"
	KindPosts     Kind = "posts"
	KindEmployee  Kind = "employee"
	KindComments  Kind = "comments"
)

// ErrNoEmployeeID is the degrade reason when ListPosts is called without an id.
var ErrNoEmployeeID = errors.New("no employee id provided")

// FetchError is returned when a read fails outright: transport errors,
// undecodable bodies, and (except for ListPosts) non-success statuses.
type FetchError struct {
	Kind Kind
	ID   int // zero for collection reads
	Err  error
}

func (e *FetchError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("fetch %s %d: %v", e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}
