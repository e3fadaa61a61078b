package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/Kariqs/decorshop/models"
)

type MailConfig struct {
	From     string
	Password string
	SMTPHost string
	Address  string
}

type EmailData struct {
	Name  string
	Order *models.Order
	Shop  string
}

// Mailer sends html email through a plain-auth SMTP relay.
type Mailer struct {
	cfg  MailConfig
	tmpl *template.Template
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig, tmpl *template.Template) *Mailer {
	return &Mailer{cfg: cfg, tmpl: tmpl, send: smtp.SendMail}
}

func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data EmailData) error {
	var body bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.SMTPHost)
	if err := m.send(m.cfg.Address, auth, m.cfg.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NotifyOrderPlaced mails the customer a receipt for a new order.
func (m *Mailer) NotifyOrderPlaced(_ context.Context, user *models.User, order *models.Order) error {
	if user.Email == "" {
		return nil
	}
	return m.SendEmail(user.Email, fmt.Sprintf("سفارش شماره %d", order.OrderNumber), "order_confirmation.html", EmailData{
		Name:  user.Username,
		Order: order,
		Shop:  "Decor Shop",
	})
}
