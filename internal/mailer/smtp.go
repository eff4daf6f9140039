package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"go.uber.org/zap"
)

// Sender delivers a single rendered email. The outbox processor retries on
// failure, so Send must be safe to call more than once per message.
type Sender interface {
	Send(to, subject, templateName string, attributes map[string]interface{}) error
}

// Config holds SMTP transport settings.
type Config struct {
	Host         string
	Port         string
	Username     string
	Password     string
	From         string
	TemplatesDir string
}

// SMTPSender renders HTML templates and delivers them over plain SMTP.
type SMTPSender struct {
	cfg       Config
	templates *template.Template
	logger    *zap.Logger
}

// NewSMTPSender parses every template under cfg.TemplatesDir up front so a
// missing or broken template fails at boot rather than at send time.
func NewSMTPSender(cfg Config, logger *zap.Logger) (*SMTPSender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.ParseGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("mailer: parsing templates: %w", err)
	}
	return &SMTPSender{
		cfg:       cfg,
		templates: tmpl,
		logger:    logger,
	}, nil
}

func (s *SMTPSender) Send(to, subject, templateName string, attributes map[string]interface{}) error {
	body, err := s.Render(templateName, attributes)
	if err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("mailer: sending to %s: %w", to, err)
	}
	s.logger.Debug("email delivered", zap.String("to", to), zap.String("template", templateName))
	return nil
}

// Render produces the HTML body for the named template.
func (s *SMTPSender) Render(templateName string, attributes map[string]interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName+".html", attributes); err != nil {
		return "", fmt.Errorf("mailer: rendering %s: %w", templateName, err)
	}
	return body.String(), nil
}
