package domain

import (
	"context"
	"time"
)

// Participant is a person's registration for one event. At most one Participant
// is expected per (Email, EventID).
// swagger:model Participant
type Participant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	IsAttending bool      `json:"is_attending"`
}

// NewParticipant returns a new Participant. ID is set by the repository on create.
func NewParticipant(name, email, eventID string, timestamp time.Time) *Participant {
	return &Participant{
		Name:      name,
		Email:     email,
		EventID:   eventID,
		Timestamp: timestamp,
	}
}

// ParticipantRepository defines typed access to the participants collection.
type ParticipantRepository interface {
	// FindByEmailAndEvent returns the existing registration or ErrNotFound.
	FindByEmailAndEvent(ctx context.Context, email, eventID string) (*Participant, error)
	// Create inserts p and sets p.ID. Returns ErrDuplicate on a uniqueness violation.
	Create(ctx context.Context, p *Participant) error
}
