package provider

import (
	"context"
	"log/slog"

	"github.com/amirasaad/subtracker/pkg/provider"
)

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "log-mailer")}
}

// Send implements provider.Mailer.
func (m *LogMailer) Send(ctx context.Context, msg provider.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.Info("email",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
