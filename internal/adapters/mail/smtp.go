package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
)

// Config carries SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends templated mails over plain SMTP. Callers treat sending as
// best-effort; this type does not retry.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender creates a mail sender from SMTP settings.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

var _ portssvc.MailSender = (*SMTPSender)(nil)

var templates = map[portssvc.MailTemplate]struct {
	subject string
	body    string
}{
	portssvc.MailTransporterApproved: {
		subject: "Votre compte transporteur a été approuvé",
		body:    "Bonjour {name},\n\nVotre compte transporteur a été approuvé. Vous pouvez dès maintenant consulter les demandes disponibles et accepter des missions.\n\nL'équipe logistique",
	},
	portssvc.MailTransporterRejected: {
		subject: "Votre dossier transporteur nécessite des modifications",
		body:    "Bonjour {name},\n\nVotre dossier n'a pas pu être approuvé pour la raison suivante:\n\n{reason}\n\nMerci de le compléter et de soumettre à nouveau.\n\nL'équipe logistique",
	},
}

func (s *SMTPSender) Send(ctx context.Context, template portssvc.MailTemplate, recipient string, data map[string]string) error {
	tpl, ok := templates[template]
	if !ok {
		return fmt.Errorf("unknown mail template %q", template)
	}

	body := tpl.body
	for key, value := range data {
		body = strings.ReplaceAll(body, "{"+key+"}", value)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + recipient,
		"Subject: " + tpl.subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{recipient}, []byte(msg))
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send %s mail to %s: %w", template, recipient, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
