package email

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/ahmad435-vlaygo/adminValygobackend/config"
)

// Mailer is the outgoing-mail dependency injected into handlers. Delivery is
// always best-effort: callers log failures and never fail the primary write.
type Mailer interface {
	Send(to, subject, html string) error
}

type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.EmailUser
	}
	return &SMTPMailer{
		host: cfg.EmailHost,
		port: cfg.EmailPort,
		user: cfg.EmailUser,
		pass: cfg.EmailPass,
		from: from,
	}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	if m.host == "" {
		return fmt.Errorf("email transport not configured")
	}

	headers := []string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + html

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %v", to, err)
	}

	log.Printf("Email sent to %s", to)
	return nil
}

// NopMailer discards mail. Used in tests and when no transport is configured.
type NopMailer struct{}

func (NopMailer) Send(to, subject, html string) error {
	return nil
}
