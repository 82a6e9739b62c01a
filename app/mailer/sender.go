package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrDelivery marks a notification transport failure. It is kept distinct
// from the confirmation lifecycle errors so callers never mistake a mail
// outage for a token problem.
var ErrDelivery = errors.New("email delivery failed")

// Sender delivers a single HTML message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogSender is the fallback when no SMTP host is configured. It logs the
// message instead of sending it, which keeps local development and tests
// working without a mail server.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    htmlBody,
	}).Info("Email delivery disabled, logging message instead")
	return nil
}
