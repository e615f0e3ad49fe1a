package provider

import (
	"context"
	"errors"
)

// ErrProviderUnavailable is returned when the provider cannot be reached.
var ErrProviderUnavailable = errors.New("provider unavailable")

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers reminder emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
