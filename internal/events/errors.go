package events

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// HubErrorKind says why a board could not reach the change hub
type HubErrorKind int

const (
	HubSocketMissing HubErrorKind = iota
	HubSocketDenied
	HubRefused
	HubUnreachable
)

func (k HubErrorKind) String() string {
	switch k {
	case HubSocketMissing:
		return "socket_missing"
	case HubSocketDenied:
		return "socket_denied"
	case HubRefused:
		return "refused"
	default:
		return "unreachable"
	}
}

// HubError describes a failed hub connection with a hint for the user
type HubError struct {
	Kind   HubErrorKind
	Socket string
	Hint   string
	Err    error
}

func (e *HubError) Error() string {
	msg := fmt.Sprintf("change hub at %s: %v", e.Socket, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *HubError) Unwrap() error {
	return e.Err
}

const startHint = "start it with `taskboard serve` or the standalone daemon"

// ClassifyHubError explains why dialing the hub on socketPath failed
func ClassifyHubError(socketPath string, err error) *HubError {
	if err == nil {
		return nil
	}

	herr := &HubError{Kind: HubUnreachable, Socket: socketPath, Err: err, Hint: startHint}

	var errno syscall.Errno
	switch {
	case errors.Is(err, os.ErrNotExist):
		herr.Kind = HubSocketMissing
	case errors.Is(err, os.ErrPermission):
		herr.Kind = HubSocketDenied
		herr.Hint = fmt.Sprintf("check that %s is owned by you: chmod 700 %s",
			filepath.Dir(socketPath), filepath.Dir(socketPath))
	case errors.As(err, &errno) && errno == syscall.ECONNREFUSED:
		herr.Kind = HubRefused
		herr.Hint = "a stale socket is left behind; " + startHint
	}
	return herr
}
