package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"meetupticket/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	active    *domain.Event
	activeErr error
	byID      map[string]*domain.Event
	getErr    error
}

func (f *fakeEventService) LoadActiveEvent(ctx context.Context) (*domain.Event, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return f.active, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// fakeDesk implements domain.TicketDesk and records the last submission.
type fakeDesk struct {
	submission domain.Submission
	lastName   string
	lastEmail  string
	calls      int
}

func (f *fakeDesk) Submit(ctx context.Context, name, email string) domain.Submission {
	f.calls++
	f.lastName, f.lastEmail = name, email
	return f.submission
}

// fakeTicketService opens tokens from a fixed table.
type fakeTicketService struct {
	passes map[string]domain.TicketPass
}

func (f *fakeTicketService) Issue(p *domain.Participant) (*domain.IssuedTicket, error) {
	return nil, errors.New("not used")
}

func (f *fakeTicketService) Open(token string) (domain.TicketPass, error) {
	pass, ok := f.passes[token]
	if !ok {
		return domain.TicketPass{}, domain.ErrInvalidTicket
	}
	return pass, nil
}

var (
	testEvent = &domain.Event{
		ID:     "E1",
		Title:  "Go Meetup",
		Active: true,
		Agenda: []domain.AgendaItem{{Time: "18:00", Topic: "Doors open"}, {Time: "18:30", Topic: "Generics in practice"}},
	}
	testParticipant = &domain.Participant{ID: "p1", Name: "Ana", Email: "ana@example.com", EventID: "E1"}
	testPass        = domain.TicketPass{ParticipantID: "p1", EventID: "E1", Name: "Ana", Email: "ana@example.com", Code: "AB12CD"}
	testTicket      = &domain.IssuedTicket{Token: "tok-p1", Pass: testPass}
)
