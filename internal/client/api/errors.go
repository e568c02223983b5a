package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures (connection refused, DNS,
// timeouts) as opposed to HTTP-level rejections.
var ErrUnavailable = errors.New("server unavailable")

// RequestError is returned for every non-2xx response. Message carries the
// server-provided detail when the body had one, the raw body text otherwise,
// or a generic message for an empty body.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func genericMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}
