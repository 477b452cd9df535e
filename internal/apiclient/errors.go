package apiclient

import (
	"errors"
	"fmt"
)

// RequestError is returned when the backend answers with a non-2xx status.
type RequestError struct {
	Op     string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return e.Op
	}
	return fmt.Sprintf("%s (%d): %s", e.Op, e.Status, e.Body)
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": service unreachable"
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is returned when a 2xx body is not the expected JSON.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return e.Op + ": unexpected response from service"
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status from a RequestError, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
