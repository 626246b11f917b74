package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	auth smtp.Auth
}

func NewSMTPMailer(host, port, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{host: host, port: port, auth: auth}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	addr := m.host + ":" + m.port
	return smtp.SendMail(addr, m.auth, msg.From, []string{msg.To}, []byte(b.String()))
}

// LogMailer logs mail instead of sending it. Used in development and tests.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	log.Printf("mail to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// ResetEmail builds the password-reset notification pointing at the
// frontend's reset page.
func ResetEmail(from, to, frontendURL, token string) Message {
	link := fmt.Sprintf("%s/reset?resetToken=%s", frontendURL, token)
	html := fmt.Sprintf(
		`<div style="border: 1px solid black; padding: 20px; font-family: sans-serif; line-height: 2; font-size: 20px;">
<p>Your password reset token is here.</p>
<p><a href="%s">Click here to reset your password.</a></p>
</div>`, link)

	return Message{
		From:    from,
		To:      to,
		Subject: "Your password reset token",
		HTML:    html,
	}
}
