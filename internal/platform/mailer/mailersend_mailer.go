package mailer

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	to      string
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail, contactEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
		to: contactEmail,
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendContactMessage(fromName, fromEmail, message string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("Contact form: %s", fromName)
	text := fmt.Sprintf("From: %s <%s>\n\n%s", fromName, fromEmail, message)
	body := fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(fromName), html.EscapeString(fromEmail), html.EscapeString(message))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: m.to}})
	msg.SetReplyTo(mailersend.ReplyTo{Name: fromName, Email: fromEmail})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(body)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
