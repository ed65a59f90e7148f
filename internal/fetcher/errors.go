package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTooLarge is returned when an artifact body exceeds MaxArtifactBytes.
var ErrTooLarge = fmt.Errorf("artifact exceeds %d MiB", MaxArtifactBytes>>20)

// ArtifactError is returned when a source answers but cannot deliver an artifact.
// Sources map their native "absent" signal (HTTP 404, missing file, S3 NoSuchKey)
// to StatusCode 404 so callers can distinguish absence without string matching.
type ArtifactError struct {
	Name       string
	StatusCode int
	Err        error
}

func (e *ArtifactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("artifact %q: status %d: %v", e.Name, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("artifact %q: status %d", e.Name, e.StatusCode)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

func notFound(name string, err error) error {
	return &ArtifactError{Name: name, StatusCode: http.StatusNotFound, Err: err}
}

// IsNotFound reports whether err is an ArtifactError with status 404.
func IsNotFound(err error) bool {
	var e *ArtifactError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an ArtifactError with status 401 or 403.
// This typically means the artifact store is private and no (or an invalid) token was provided.
func IsUnauthorized(err error) bool {
	var e *ArtifactError
	return errors.As(err, &e) && (e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
