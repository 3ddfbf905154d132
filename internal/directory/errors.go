package directory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced case or contact does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest is returned for requests the service refuses to run.
	ErrInvalidRequest = errors.New("invalid request")
)

// UnknownErrorMessage is used when a failure carries no message at all.
const UnknownErrorMessage = "Unknown error occurred"

// ErrorBody is the structured payload of a failed remote call.
type ErrorBody struct {
	Message string `json:"message"`
}

// RemoteError is a failed remote call. Body is optional; when present its
// message is preferred over Message.
type RemoteError struct {
	Body    *ErrorBody
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if msg := e.preferredMessage(); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return UnknownErrorMessage
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) preferredMessage() string {
	if e.Body != nil && strings.TrimSpace(e.Body.Message) != "" {
		return e.Body.Message
	}
	return strings.TrimSpace(e.Message)
}

// NewRemoteError wraps err with a structured body message.
func NewRemoteError(bodyMessage string, err error) *RemoteError {
	return &RemoteError{Body: &ErrorBody{Message: bodyMessage}, Err: err}
}

// Errorf returns a RemoteError without a body, wrapping any %w operand.
func Errorf(format string, args ...any) *RemoteError {
	wrapped := fmt.Errorf(format, args...)
	return &RemoteError{Message: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// MessageOf extracts the user-facing message of err: the structured body
// message, then the error message, then UnknownErrorMessage.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var re *RemoteError
	if errors.As(err, &re) {
		if msg := re.preferredMessage(); msg != "" {
			return msg
		}
		if re.Err != nil && re.Err.Error() != "" {
			return re.Err.Error()
		}
		return UnknownErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
