package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteRequestFailed matches every failed gateway call: non-2xx
	// responses, transport failures and calls rejected by the open breaker.
	ErrRemoteRequestFailed = errors.New("remote request failed")

	// ErrNoToken is returned by authenticated calls when no bearer token is
	// stored. Best-effort callers treat it as "skip".
	ErrNoToken = errors.New("no auth token")
)

// RemoteError describes a failed gateway call.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRequestFailed
}
