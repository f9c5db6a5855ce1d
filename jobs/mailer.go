package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers mail through a plain SMTP relay, Mailpit in
// development.
type SMTPMailer struct {
	Addr string
	From string
}

// Send delivers one message.
func (m SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg.String()))
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP
// relay is configured.
type LogMailer struct {
	Logger *slog.Logger
}

// Send records the message.
func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.Info("mail suppressed", slog.String("to", to), slog.String("subject", subject))
	return nil
}
