// Package mailer renders and delivers the transactional emails: OTP
// codes, registration welcomes, and password-reset links. Delivery is
// best effort; callers log failures and carry on.
package mailer

import (
	"bytes"
	"context"
	"html/template"
)

// Transport submits a rendered message to the mail system.
type Transport interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type Config struct {
	From          string
	ExpiryMinutes int
}

type Mailer struct {
	cfg       Config
	transport Transport
}

func New(cfg Config, transport Transport) *Mailer {
	if cfg.ExpiryMinutes <= 0 {
		cfg.ExpiryMinutes = 15
	}
	return &Mailer{cfg: cfg, transport: transport}
}

func (m *Mailer) SendOTP(ctx context.Context, to, firstName, code string) error {
	return m.send(ctx, to, "Your OTP Code for Email Verification", otpTmpl, OTPData{
		FirstName:     firstName,
		Code:          code,
		ExpiryMinutes: m.cfg.ExpiryMinutes,
	})
}

func (m *Mailer) SendWelcome(ctx context.Context, to, firstName string) error {
	return m.send(ctx, to, "Welcome to Our Church!", welcomeTmpl, WelcomeData{
		FirstName: firstName,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, firstName, link, code string) error {
	return m.send(ctx, to, "Password Reset Request", resetTmpl, ResetData{
		FirstName: firstName,
		Link:      link,
		Code:      code,
	})
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	htmlBody := buf.String()
	return m.transport.Send(ctx, to, subject, htmlBody, stripTags(htmlBody))
}
