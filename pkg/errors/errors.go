package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrRefreshFailed = errors.New("token refresh failed")
	ErrReadOnly      = errors.New("store is read-only")
)

// PlatformError reports a non-success status returned by an upstream social platform.
type PlatformError struct {
	Platform string
	Status   int
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Platform, e.Status)
}

// Unwrap maps a 401 onto ErrUnauthorized so callers can use IsUnauthorized.
func (e *PlatformError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// NewPlatformError returns a PlatformError for the given platform and status.
func NewPlatformError(platform string, status int) error {
	return &PlatformError{Platform: platform, Status: status}
}

// GetStatus returns the upstream status of a PlatformError, or 0.
func GetStatus(err error) int {
	var e *PlatformError
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsUnauthorized returns true if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRefreshFailed returns true if a token refresh could not be completed
func IsRefreshFailed(err error) bool {
	return errors.Is(err, ErrRefreshFailed)
}

// IsReadOnly returns true if a write hit a store that cannot persist
func IsReadOnly(err error) bool {
	return errors.Is(err, ErrReadOnly)
}
