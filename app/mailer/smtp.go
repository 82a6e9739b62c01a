package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/config"
)

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	return &SMTPSender{
		host:     cfg.Host,
		port:     port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (s *SMTPSender) Send(_ context.Context, to, subject, htmlBody string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: recipient address is required", ErrDelivery)
	}

	msg := buildMessage(s.from, s.fromName, to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

func buildMessage(from, fromName, to, subject, htmlBody string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody
}
