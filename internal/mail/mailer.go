// File: internal/mail/mailer.go
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"notes_app_backend/internal/common"
)

// Message is a single plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages to a recipient.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSettings holds the connection parameters for the SMTP mailer.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type smtpMailer struct {
	settings SMTPSettings
}

// NewSMTPMailer creates a Mailer backed by an SMTP server.
func NewSMTPMailer(settings SMTPSettings) (Mailer, error) {
	if settings.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if settings.Port == 0 {
		settings.Port = 587
	}
	if settings.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	if settings.Timeout == 0 {
		settings.Timeout = 10 * time.Second
	}
	return &smtpMailer{settings: settings}, nil
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return common.ErrBadRequest.WithDetails("Recipient address is required.")
	}

	addr := net.JoinHostPort(m.settings.Host, fmt.Sprintf("%d", m.settings.Port))

	dialer := &net.Dialer{Timeout: m.settings.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.settings.Timeout))
	}

	client, err := smtp.NewClient(conn, m.settings.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.settings.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if m.settings.Username != "" {
		auth := smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.settings.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(m.settings.From, msg))); err != nil {
		w.Close()
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

func buildMessage(from string, msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: \"notes-app\" <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.String()
}
