package results

import (
	"errors"
	"fmt"
)

// TransformErrorKind classifies why a curve could not be assembled.
type TransformErrorKind int

const (
	LengthMismatch TransformErrorKind = iota + 1
	Empty
)

func (k TransformErrorKind) String() string {
	switch k {
	case LengthMismatch:
		return "length mismatch"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("TransformErrorKind(%d)", int(k))
	}
}

// TransformError is returned by Assemble.
type TransformError struct {
	Kind   TransformErrorKind
	Detail string
}

func (e *TransformError) Error() string { return e.Detail }

// IsLengthMismatch reports whether err is a TransformError of kind LengthMismatch.
func IsLengthMismatch(err error) bool {
	var e *TransformError
	return errors.As(err, &e) && e.Kind == LengthMismatch
}

// IsEmpty reports whether err is a TransformError of kind Empty.
func IsEmpty(err error) bool {
	var e *TransformError
	return errors.As(err, &e) && e.Kind == Empty
}
