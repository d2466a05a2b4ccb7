package notify

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers plain-text mail through SendGrid.
type EmailSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailSender(apiKey, fromEmail, fromName string) *EmailSender {
	return &EmailSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Send delivers one message. Blocking; callers run it off the request path.
func (s *EmailSender) Send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmailPlainText(from, subject, mail.NewEmail("", to), body)

	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned %d", resp.StatusCode)
	}

	return nil
}
