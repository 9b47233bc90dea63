package storage

import "errors"

// Sentinel errors for storage conditions
var (
	ErrMalformedQuery = errors.New("malformed query construction")
	ErrNotStarted     = errors.New("repository not started")
)

// MisuseError reports an invalid builder call sequence, such as a duplicate
// WHERE or a conjunction with no preceding WHERE. It is raised as a panic:
// misuse is a programmer error and query construction must not continue.
type MisuseError struct {
	Reason string
}

func (e *MisuseError) Error() string {
	return "malformed query: " + e.Reason
}

func (e *MisuseError) Is(target error) bool {
	return target == ErrMalformedQuery
}
