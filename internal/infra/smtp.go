package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/config"

	"github.com/jordan-wright/email"
)

// Mail is one outgoing message.
type Mail struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Mailer sends mail over SMTP. Sends go through a breaker so a dead relay
// fails fast instead of tying up every worker.
type Mailer struct {
	host    string
	from    string
	addr    string
	auth    smtp.Auth
	breaker *Breaker
	send    func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(cfg *config.Config) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &Mailer{
		host:    cfg.SMTPHost,
		from:    cfg.SMTPFrom,
		addr:    fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth:    auth,
		breaker: NewBreaker(5, time.Minute),
		send:    func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Configured reports whether an SMTP host is set.
func (m *Mailer) Configured() bool { return m.host != "" }

func (m *Mailer) Send(msg Mail) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	if msg.AttachmentPath != "" {
		if _, err := e.AttachFile(msg.AttachmentPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}
	return m.breaker.Do(func() error { return m.send(e, m.addr, m.auth) })
}
