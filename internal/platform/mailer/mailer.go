package mailer

// Service delivers outbound application mail.
type Service interface {
	SendContactMessage(fromName, fromEmail, message string) error
}
