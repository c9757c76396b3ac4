package domain

import "context"

// EmailMessage is a rendered email ready for delivery. Kind names the
// template it came from and is attached to the message as a delivery tag.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Kind    string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TicketConfirmationEmailData holds data for the registration confirmation email.
type TicketConfirmationEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Code       string
	TicketURL  string
	Agenda     []AgendaItem
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTicketConfirmation(ctx context.Context, data *TicketConfirmationEmailData) error
}
