package utils

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML mail over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

// NewMailer returns nil when no SMTP host is configured, which disables
// outgoing mail without a separate flag.
func NewMailer(host string, port int, username, password string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{Host: host, Port: port, Username: username, Password: password}
}

// Send delivers a single HTML message.
func (m *Mailer) Send(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.Username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(mailer)
}
