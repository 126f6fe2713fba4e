package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/pyasti/backend/internal/application/notification"
	"github.com/pyasti/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SMTPTransport delivers notifications as plain-text email over SMTP.
// When the host is left unconfigured the transport logs the message
// instead of sending it, which keeps local development working without
// a mail server.
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewSMTPTransport creates an SMTP transport from mail configuration
func NewSMTPTransport(cfg config.MailConfig, logger *zap.Logger) *SMTPTransport {
	return &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger.Named("mail"),
	}
}

// Send delivers one rendered message to one recipient
func (t *SMTPTransport) Send(ctx context.Context, to notification.Recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.host == "" {
		t.logger.Info("mail transport not configured, dropping message",
			zap.String("recipient", to.Email),
			zap.String("subject", subject))
		return nil
	}

	message := t.buildMessage(to, subject, body)

	var auth smtp.Auth
	if t.username != "" {
		auth = smtp.PlainAuth("", t.username, t.password, t.host)
	}

	addr := fmt.Sprintf("%s:%d", t.host, t.port)
	if err := smtp.SendMail(addr, auth, t.from, []string{to.Email}, message); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to.Email, err)
	}
	return nil
}

func (t *SMTPTransport) buildMessage(to notification.Recipient, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", t.from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to.Email))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// Ensure SMTPTransport implements the notification port
var _ notification.Transport = (*SMTPTransport)(nil)
