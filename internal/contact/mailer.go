package contact

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer forwards contact messages to the operators' inbox.
type Mailer interface {
	NotifyContactMessage(msg *ContactMessage) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type smtpMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPMailer returns nil when no SMTP host is configured; the
// service treats a nil mailer as notifications disabled.
func NewSMTPMailer(cfg SMTPConfig, logger ...*zap.Logger) Mailer {
	if cfg.Host == "" {
		return nil
	}

	l := zap.L().Named("contact.mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contact.mailer")
	}

	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: l,
	}
}

func (m *smtpMailer) NotifyContactMessage(msg *ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "New contact message"
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.From)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", fmt.Sprintf("[HiringLens] %s", subject))
	mail.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message))

	if err := m.dialer.DialAndSend(mail); err != nil {
		m.logger.Error("send contact notification failed", zap.Error(err))
		return err
	}

	return nil
}
