package util

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/AvancyBrasil/API-Find/pkg/logger"
)

// ErrInvalidHeader is returned when a header value carries a line break.
var ErrInvalidHeader = errors.New("email header contains line break")

// Mailer sends a plaintext email.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
	}
}

// Send delivers the message. Without credentials it only logs, which is the
// development mode.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if HasLineBreak(to) || HasLineBreak(subject) {
		return ErrInvalidHeader
	}

	if m.username == "" || m.password == "" {
		logger.Info("[DEV MODE] email not sent, SMTP credentials missing", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	msg := buildMessage(m.from, to, subject, body)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := m.send(m.host+":"+m.port, auth, m.from, []string{to}, msg); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to": to,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// HasLineBreak reports whether s would split an email header line.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
