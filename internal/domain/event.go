package domain

import (
	"context"
	"time"
)

// AgendaItem is one slot of an event agenda.
type AgendaItem struct {
	Time  string `json:"time"`
	Topic string `json:"topic"`
}

// Event is a meetup that participants register for. Events are created out of
// band; this service only reads them and increments RegisteredParticipants.
// swagger:model Event
type Event struct {
	ID                     string       `json:"id"`
	Title                  string       `json:"title"`
	Description            string       `json:"description"`
	Date                   *time.Time   `json:"date,omitempty"`
	Active                 bool         `json:"active"`
	ParticipantLimit       *int         `json:"participant_limit"`
	RegisteredParticipants int          `json:"registered_participants"`
	Agenda                 []AgendaItem `json:"agenda"`
}

// IsFull reports whether the event has a limit and the counter reached it.
func (e *Event) IsFull() bool {
	return e.ParticipantLimit != nil && e.RegisteredParticipants >= *e.ParticipantLimit
}

// EventRepository defines typed access to the events collection.
type EventRepository interface {
	ListActive(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	IncrementRegistered(ctx context.Context, id string) error
}

// EventService loads the event currently open for registration.
type EventService interface {
	// LoadActiveEvent returns the single active event, ErrNoActiveEvent when there
	// is none and ErrAmbiguousActiveEvent when more than one is flagged active.
	LoadActiveEvent(ctx context.Context) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
}
