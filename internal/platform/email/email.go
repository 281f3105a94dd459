package email

import (
	"context"
	"crypto/tls"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/gomail.v2"

	"payslips/internal/domain/payroll"
	"payslips/internal/platform/config"
)

type noopMailer struct{}

func (noopMailer) SendAttachment(ctx context.Context, to, subject, body, filename string, data []byte) error {
	return nil
}

type smtpMailer struct {
	from   string
	dialer *gomail.Dialer
}

func New(cfg config.Config) payroll.Mailer {
	if !cfg.EmailEnabled || cfg.SMTPHost == "" {
		return noopMailer{}
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	dialer.SSL = cfg.SMTPImplicitTLS
	dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost, MinVersion: tls.VersionTLS12}
	return &smtpMailer{from: cfg.EmailFrom, dialer: dialer}
}

// SendAttachment opens one SMTP session per message; gomail has no context
// support so cancellation is only checked before dialling.
func (s *smtpMailer) SendAttachment(ctx context.Context, to, subject, body, filename string, data []byte) error {
	recipients := splitRecipients(to)
	if len(recipients) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(buildMessage(s.from, recipients, subject, body, filename, data))
}

func buildMessage(from string, to []string, subject, body, filename string, data []byte) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	msg.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return msg
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
