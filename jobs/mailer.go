package jobs

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender delivers emails over plain SMTP. It targets local relays such
// as Mailpit in development; Auth may be nil when the relay is open.
type SMTPSender struct {
	Addr string
	From string
	Auth smtp.Auth
}

// Send delivers a single plain-text message.
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.Addr, s.Auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
