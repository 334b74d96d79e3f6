package provider

import (
	"errors"
	"fmt"
)

// Failure classes returned by the exchange client. Match with errors.Is.
var (
	ErrTransport      = errors.New("transport failure")
	ErrDecode         = errors.New("decode failure")
	ErrUpstreamStatus = errors.New("upstream status failure")
)

// StatusError reports a non-success answer from the exchange, either an HTTP
// status other than 200 or a body whose code is not the success code.
type StatusError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bitget API error (http %d, code %q): %s", e.HTTPStatus, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

func decodeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}
