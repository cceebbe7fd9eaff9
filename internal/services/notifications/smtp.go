package notifications

import (
	"context"
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/edenhq/meeting-api/pkg/config"
)

// SMTPSender delivers mail through a configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = "no-reply@example.com"
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// ConsoleSender logs messages instead of sending them. It is the fallback
// when no SMTP host is configured.
type ConsoleSender struct{}

func (ConsoleSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("[EMAIL MOCK] To: %s", to)
	log.Printf("[EMAIL MOCK] Subject: %s", subject)
	log.Printf("[EMAIL MOCK] Body:\n%s", body)
	return nil
}

// NewFromConfig picks the SMTP sender when a host is configured, the console
// sender otherwise.
func NewFromConfig(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return ConsoleSender{}
	}
	return NewSMTPSender(cfg)
}
