package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrStatus indicates the service answered with a non-2xx status.
type ErrStatus struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *ErrStatus) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// ErrTransport indicates the request never got an HTTP answer: connection
// refused, DNS failure, timeout or cancellation.
type ErrTransport struct {
	Endpoint string
	Err      error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx body that could not be decoded or did
// not match the expected schema.
type ErrInvalidResponse struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Endpoint, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrNoMockResponse is returned by MockClient when its queue is empty.
var ErrNoMockResponse = errors.New("no canned response queued")

// IsTransportFailure reports whether err came from talking to the service,
// as opposed to a local programming or state error.
func IsTransportFailure(err error) bool {
	var (
		st  *ErrStatus
		tr  *ErrTransport
		inv *ErrInvalidResponse
	)
	return errors.As(err, &st) || errors.As(err, &tr) || errors.As(err, &inv)
}

// StatusCode extracts the HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var st *ErrStatus
	if errors.As(err, &st) {
		return st.StatusCode
	}
	return 0
}
