package mailer

import (
	"context"
	"log/slog"
)

// LogTransport drops messages into the log instead of delivering them.
// Used when outbound mail is disabled, typically local development.
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	slog.Info("mail suppressed", "to", to, "subject", subject, "body", textBody)
	return nil
}
