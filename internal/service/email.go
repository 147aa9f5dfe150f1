package service

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// EmailConfig holds SMTP settings. An empty Host disables sending.
type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type EmailService struct {
	cfg  EmailConfig
	log  *zap.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg EmailConfig, log *zap.Logger) *EmailService {
	if cfg.From == "" {
		cfg.From = "no-reply@pikasmart.app"
	}
	return &EmailService{cfg: cfg, log: log, send: smtp.SendMail}
}

func (s *EmailService) SendPasswordResetEmail(email, link string) error {
	subject := "Reset your PikaSmart password"
	body := fmt.Sprintf(`<p>Someone asked to reset the password for this account.</p>
<p><a href="%s">Choose a new password</a>. The link expires in 10 minutes.</p>
<p>If this wasn't you, you can ignore this email.</p>`, link)
	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.cfg.Host == "" || s.cfg.Port == "" {
		s.log.Info("SMTP not configured, logging email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body),
		)
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: PikaSmart <%s>\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, s.cfg.From, subject, body))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
