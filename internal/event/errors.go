package event

import (
	"errors"
	"fmt"
)

// ErrStreamClosed is reported when the daemon closes the event stream without an error.
var ErrStreamClosed = errors.New("docker event stream closed")

type UnsupportedEventTypeError struct {
	eventType string
	action    string
}

func NewUnsupportedEventTypeError(eventType, action string) *UnsupportedEventTypeError {
	return &UnsupportedEventTypeError{eventType: eventType, action: action}
}

func (e *UnsupportedEventTypeError) Error() string {
	return fmt.Sprintf("unsupported event: type=%s action=%s", e.eventType, e.action)
}

// MalformedEventError is returned for container events lacking an attribute the
// notification needs.
type MalformedEventError struct {
	ID      string
	Missing string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed container event %q: missing %s", e.ID, e.Missing)
}
