package repository

import (
	"errors"
	"fmt"
)

// Kind classifies a repository failure.
type Kind int

const (
	// NotFound: one or both artifacts could not be retrieved (absent, timed out, unreachable).
	NotFound Kind = iota + 1
	// Malformed: an artifact was retrieved but failed shape validation.
	Malformed
	// PartialFailure: exactly one of the two artifacts failed.
	PartialFailure
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Malformed:
		return "malformed"
	case PartialFailure:
		return "partial_failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RepositoryError is returned by FetchResults.
//
// For PartialFailure, Artifact names the artifact that failed and Cause holds
// its own classification (NotFound or Malformed). For the other kinds Artifact
// is set only when a single artifact is involved.
type RepositoryError struct {
	Kind     Kind
	Artifact string
	Cause    Kind
	Detail   string
	Err      error
}

func (e *RepositoryError) Error() string { return e.Detail }

func (e *RepositoryError) Unwrap() error { return e.Err }

func kindOf(err error) (Kind, bool) {
	var e *RepositoryError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a RepositoryError of kind NotFound.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == NotFound
}

// IsMalformed reports whether err is a RepositoryError of kind Malformed.
func IsMalformed(err error) bool {
	k, ok := kindOf(err)
	return ok && k == Malformed
}

// IsPartialFailure reports whether err is a RepositoryError of kind PartialFailure.
func IsPartialFailure(err error) bool {
	k, ok := kindOf(err)
	return ok && k == PartialFailure
}
