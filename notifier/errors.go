package notifier

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransport   = errors.New("notifier: no HTTP transport available")
	ErrInvalidConfig = errors.New("notifier: invalid configuration")
	ErrTransport     = errors.New("notifier: transport failure")
	ErrRemoteFailure = errors.New("notifier: remote service reported a failure")
)

// RemoteError is returned in strict mode when the service answered with
// anything but its success code.
type RemoteError struct {
	Service     string
	StatusCode  int
	Description string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Description)
}

func (e *RemoteError) Is(target error) bool {
	return errors.Is(target, ErrRemoteFailure)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteFailure
}

func IsRemoteError(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}

	return nil, false
}

// InvalidConfig marks err as a configuration error.
func InvalidConfig(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
