package email

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed sender configuration.
	ErrInvalidConfig = errors.New("email: invalid config")
	// ErrInvalidMessage indicates a message that cannot be dispatched.
	ErrInvalidMessage = errors.New("email: invalid message")
	// ErrSendFailed wraps delivery failures from the underlying transport.
	ErrSendFailed = errors.New("email: failed to send")
)
