package restclient

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is returned for any non-2xx response without a more
// specific mapping
var ErrUnexpectedStatus = errors.New("unexpected response status")

// StatusError carries the decoded error body of a failed request
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: %d %s: %s", ErrUnexpectedStatus, e.StatusCode, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
