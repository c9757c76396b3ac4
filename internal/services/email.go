package services

import (
	"context"
	"fmt"
	"log/slog"

	"meetupticket/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendTicketConfirmation sends the "ticket_confirmation" email with the ticket code and agenda.
func (s *emailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("ticket confirmation data is nil")
	}
	const kind = "ticket_confirmation"
	subject, htmlBody, textBody, err := s.renderer.Render(kind, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", kind, err)
	}
	msg := domain.EmailMessage{To: data.Email, Subject: subject, HTML: htmlBody, Text: textBody, Kind: kind}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send ticket confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "ticket confirmation sent", "to", data.Email, "code", data.Code)
	return nil
}
