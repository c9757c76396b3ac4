package services

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"meetupticket/internal/domain"
)

type ticketDesk struct {
	events       domain.EventService
	registration domain.RegistrationService
	tickets      domain.TicketService
	emails       domain.EmailService
	recorder     domain.OutcomeRecorder
	baseURL      string
	logger       *slog.Logger
}

// NewTicketDesk wires the registration workflow to ticket issuing and the
// confirmation email. baseURL is used to build the ticket link in the email.
// recorder counts submits that fail before reaching the workflow, which
// records its own outcomes; it may be nil.
func NewTicketDesk(
	events domain.EventService,
	registration domain.RegistrationService,
	tickets domain.TicketService,
	emails domain.EmailService,
	recorder domain.OutcomeRecorder,
	baseURL string,
	logger *slog.Logger,
) domain.TicketDesk {
	return &ticketDesk{
		events:       events,
		registration: registration,
		tickets:      tickets,
		emails:       emails,
		recorder:     recorder,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (d *ticketDesk) Submit(ctx context.Context, name, email string) domain.Submission {
	event, err := d.events.LoadActiveEvent(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoActiveEvent) {
		d.logger.ErrorContext(ctx, "load active event failed", "err", err)
		outcome := domain.StoreError(err)
		if d.recorder != nil {
			d.recorder.RecordOutcome(outcome.Kind)
		}
		return domain.Submission{Outcome: outcome}
	}

	sub := domain.Submission{
		Outcome: d.registration.Register(ctx, event, name, email),
		Event:   event,
	}
	if !sub.Outcome.HasTicket() {
		return sub
	}

	ticket, err := d.tickets.Issue(sub.Outcome.Participant)
	if err != nil {
		d.logger.ErrorContext(ctx, "issue ticket failed", "participant_id", sub.Outcome.Participant.ID, "err", err)
		sub.Outcome = domain.StoreError(err)
		return sub
	}
	sub.Ticket = ticket

	if sub.Outcome.Kind == domain.OutcomeRegistered && d.emails != nil {
		data := &domain.TicketConfirmationEmailData{
			Email:      ticket.Pass.Email,
			Name:       ticket.Pass.Name,
			EventTitle: event.Title,
			Code:       ticket.Pass.Code,
			TicketURL:  d.ticketURL(ticket.Token),
			Agenda:     event.Agenda,
		}
		if err := d.emails.SendTicketConfirmation(ctx, data); err != nil {
			d.logger.WarnContext(ctx, "ticket confirmation email not sent", "participant_id", ticket.Pass.ParticipantID, "err", err)
		}
	}
	return sub
}

func (d *ticketDesk) ticketURL(token string) string {
	return d.baseURL + "/ticket?" + url.Values{"t": {token}}.Encode()
}
