package nabaztag

import (
	"errors"
	"fmt"
)

var ErrUnknownStatus = errors.New("nabaztag: unknown build status")

// BuildStatus selects one of the standard build notifications.
type BuildStatus string

const (
	StatusSuccess  BuildStatus = "success"
	StatusFailure  BuildStatus = "failure"
	StatusRecovery BuildStatus = "recovery"
)

func ParseBuildStatus(s string) (BuildStatus, error) {
	status := BuildStatus(s)
	if _, err := status.Message(); err != nil {
		return "", err
	}

	return status, nil
}

// Message returns the spoken message for the status.
func (s BuildStatus) Message() (string, error) {
	switch s {
	case StatusSuccess:
		return "The build was successful", nil
	case StatusFailure:
		return "The build has failed", nil
	case StatusRecovery:
		return "The build has been recovered", nil
	default:
		return "", fmt.Errorf("%w (%s)", ErrUnknownStatus, string(s))
	}
}
