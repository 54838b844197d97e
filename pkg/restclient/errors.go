package restclient

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError reports a failure before any response was obtained
// (connection refused, DNS, timeout, I/O during transfer). Err is the
// transport's error, untouched.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestFailedError reports a response outside 200-299, or a successful
// status without a body.
type RequestFailedError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	// Body holds the response text when BodyPresent is true.
	Body        string
	BodyPresent bool
}

func (e *RequestFailedError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	msg := fmt.Sprintf("unexpected response %s %s: %s", e.Method, e.URL, status)
	if e.BodyPresent && e.Body != "" {
		msg += " with body " + e.Body
	}
	return msg
}

// IsTransportError reports whether err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsRequestFailed reports whether err is, or wraps, a *RequestFailedError.
func IsRequestFailed(err error) bool {
	var e *RequestFailedError
	return errors.As(err, &e)
}

// StatusCode returns the HTTP status carried by a *RequestFailedError, or 0.
func StatusCode(err error) int {
	var e *RequestFailedError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
