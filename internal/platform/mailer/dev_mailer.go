package mailer

import (
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

// DevMailer logs mail instead of sending it.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendContactMessage(fromName, fromEmail, message string) error {
	logger.Info("[DEV MAIL] Contact form submission",
		"from_name", fromName,
		"from_email", fromEmail,
		"message", message,
	)
	return nil
}
