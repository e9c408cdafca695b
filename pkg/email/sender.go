// Package email provides the outbound mail contract used to deliver
// verification codes, a Postmark-backed implementation for production and
// a filesystem sink for local development.
package email

import (
	"context"
	"fmt"
	"net/mail"
)

// Sender dispatches a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message represents an outbound email.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyText string `json:"body_text"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks that the message has a deliverable recipient, a subject
// and a body.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: invalid recipient address", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.BodyText == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
