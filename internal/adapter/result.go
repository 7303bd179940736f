package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Response is the success arm of a call: a 2xx answer of the backend.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// FailureKind tells apart the ways a call can fail.
type FailureKind int

const (
	// FailureTransport means no HTTP response was received (dial, timeout,
	// cancellation) or the response could not be decoded.
	FailureTransport FailureKind = iota + 1
	// FailureStatus means the backend answered with a non-2xx status.
	FailureStatus
	// FailureSessionExpired means the access token could not be renewed and
	// the local session was purged.
	FailureSessionExpired
	// FailureStorage means the local session storage could not be read.
	FailureStorage
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureSessionExpired:
		return "session expired"
	case FailureStorage:
		return "storage"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Failure is the error arm of a call. Status and Body are set for
// [FailureStatus] only.
type Failure struct {
	Kind   FailureKind
	Status int
	Body   []byte
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s failure (%d): %v", f.Kind, f.Status, f.Err)
	}
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Message returns the human-readable message of the backend error body
// ({"message": ...} or the envelope description), or "" when there is none.
func (f *Failure) Message() string {
	if len(f.Body) == 0 {
		return ""
	}

	var body struct {
		Message     string `json:"message"`
		Description string `json:"description"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(f.Body, &body); err != nil {
		return strings.TrimSpace(string(f.Body))
	}

	switch {
	case body.Message != "":
		return body.Message
	case body.Description != "":
		return body.Description
	default:
		return body.Error
	}
}

// AsFailure extracts the [*Failure] from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if f, ok := AsFailure(err); ok {
		return f.Status
	}
	return 0
}
