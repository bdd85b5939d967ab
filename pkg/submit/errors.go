package submit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCollection is returned when a submission has no collection.
	ErrNoCollection = errors.New("submit: no collection selected")
	// ErrUnknownCollection is returned when the collection is not registered.
	ErrUnknownCollection = errors.New("submit: unknown collection")
	// ErrMalformedResponse signals a success status with an undecodable body.
	ErrMalformedResponse = errors.New("submit: malformed response body")

	errNoSender = errors.New("submit: no sender configured")
)

// RejectionError is a non-2xx answer from the remote API. Message holds the
// server supplied "error" field and is empty when the body carried none.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("submit: rejected with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("submit: rejected with status %d", e.StatusCode)
}

// TransportError wraps a failure to obtain a usable response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submit: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusFor converts a send outcome into the status the user sees.
func statusFor(err error) Status {
	if err == nil {
		return Status{State: StateSuccess, Message: MessageSuccess}
	}
	switch {
	case errors.Is(err, ErrNoCollection), errors.Is(err, ErrUnknownCollection):
		return Status{State: StateError, Message: MessageNoCollection, Err: err}
	}
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		msg := rejection.Message
		if strings.TrimSpace(msg) == "" {
			msg = MessageFailed
		}
		return Status{State: StateError, Message: msg, Err: err}
	}
	return Status{State: StateError, Message: MessageFailed, Err: err}
}
