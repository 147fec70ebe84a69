package httpclient

import (
	"errors"
)

var (
	ErrNoTransport      = errors.New("httpclient: no transport configured")
	ErrRequestFailed    = errors.New("httpclient: request failed")
	ErrReadResponse     = errors.New("httpclient: failed to read response")
	ErrCreateRequest    = errors.New("httpclient: failed to create request")
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
)
