package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/userhub-io/userhub/internal/config"
	"github.com/userhub-io/userhub/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

// Mailer sends account-lifecycle email.
type Mailer interface {
	// SendActivationEmail delivers the activation link carrying the signed
	// token to the given address.
	SendActivationEmail(ctx context.Context, toEmail, username, token string) error
}

// SMTPMailer implements Mailer over a configured SMTP relay.
type SMTPMailer struct {
	cfg    config.MailConfig
	logger *slog.Logger
}

// NewSMTPMailer creates a new SMTPMailer.
// If logger is nil, a default logger will be used.
func NewSMTPMailer(cfg config.MailConfig, logger *slog.Logger) *SMTPMailer {
	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPMailer{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "mailer")),
	}
}

// Ensure SMTPMailer implements Mailer interface
var _ Mailer = (*SMTPMailer)(nil)

// SendActivationEmail implements Mailer.SendActivationEmail
func (m *SMTPMailer) SendActivationEmail(ctx context.Context, toEmail, username, token string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	activationURL := fmt.Sprintf("%s/%s", m.cfg.ActivationBaseURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Activate your account")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nClick here to activate your account: %s\n\nThe link expires in 24 hours.\n",
		username, activationURL,
	))

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)

	if err := d.DialAndSend(msg); err != nil {
		log.Error("failed to send activation email",
			slog.String("error", err.Error()))
		return fmt.Errorf("send activation email: %w", err)
	}

	log.Info("activation email sent")
	return nil
}
