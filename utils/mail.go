package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/Kariqs/chapaquente-api/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type EmailData struct {
	Name          string
	Message       string
	LoyaltyPoints int
	MaxPoints     int
}

// Mailer sends HTML e-mails through a plain-auth SMTP relay.
type Mailer struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Enabled()
}

// RenderEmail executes the named template into a full MIME message.
func RenderEmail(from, subject, templateName string, data EmailData) ([]byte, error) {
	var body bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&body, templateName, data); err != nil {
		return nil, fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		subject,
		body.String(),
	)
	return []byte(message), nil
}

func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data EmailData) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	message, err := RenderEmail(m.cfg.From, emailSubject, templateName, data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *Mailer) SendWelcomeEmail(name, email string) error {
	return m.SendEmail(email, "Bem-vindo ao Chapa Quente", "welcome.html", EmailData{
		Name:      name,
		Message:   "Seu cartão fidelidade está ativo: cada pedido vale um carimbo.",
		MaxPoints: 10,
	})
}
