package utils

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Attachment is an in-memory file attached to an email
type Attachment struct {
	Name string
	Data []byte
}

// Email is a single HTML message
type Email struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer sends email
type Mailer interface {
	Send(email Email) error
}

// SMTPMailer sends through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns an SMTP mailer, or a LogMailer when SMTP is not configured
func NewMailer(cfg EmailConfig) Mailer {
	if cfg.Host == "" || cfg.Username == "" {
		LogInfo("SMTP not configured, emails will only be logged")
		return LogMailer{}
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send sends an email using SMTP
func (m *SMTPMailer) Send(email Email) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, AppName)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", StripTags(email.HTML))
	msg.AddAlternative("text/html", email.HTML)

	for _, a := range email.Attachments {
		data := a.Data
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	LogInfo("Email sent to %s: %s", email.To, email.Subject)
	return nil
}

// LogMailer only logs messages. Used when SMTP credentials are absent.
type LogMailer struct{}

// Send logs the email instead of sending it
func (LogMailer) Send(email Email) error {
	LogInfo("Email (not sent, SMTP disabled) to %s: %s", email.To, email.Subject)
	return nil
}

// SendAsync sends in the background. Failures are logged and never reach the caller.
// A nil mailer drops the email.
func SendAsync(m Mailer, email Email) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(email); err != nil {
			LogError("Email sending error to %s (%s): %v", email.To, email.Subject, err)
		}
	}()
}
