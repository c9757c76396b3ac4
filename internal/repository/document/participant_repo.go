package document

import (
	"context"
	"fmt"

	"meetupticket/internal/domain"
)

// Field names of documents in the participants collection.
const (
	fieldName        = "name"
	fieldEmail       = "email"
	fieldEventID     = "eventId"
	fieldTimestamp   = "timestamp"
	fieldIsAttending = "isAttending"
)

type participantRepository struct {
	store domain.DocumentStore
}

func NewParticipantRepository(store domain.DocumentStore) domain.ParticipantRepository {
	return &participantRepository{store: store}
}

func (r *participantRepository) FindByEmailAndEvent(ctx context.Context, email, eventID string) (*domain.Participant, error) {
	docs, err := r.store.Find(ctx, domain.CollectionParticipants, []domain.Filter{
		domain.Eq(fieldEmail, email),
		domain.Eq(fieldEventID, eventID),
	})
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return decodeParticipant(docs[0])
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	id, err := r.store.Insert(ctx, domain.CollectionParticipants, map[string]any{
		fieldName:        p.Name,
		fieldEmail:       p.Email,
		fieldEventID:     p.EventID,
		fieldTimestamp:   p.Timestamp,
		fieldIsAttending: p.IsAttending,
	})
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func decodeParticipant(doc domain.Document) (*domain.Participant, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("%w: participant without id", domain.ErrMalformedDocument)
	}
	p := &domain.Participant{ID: doc.ID}
	var err error
	if p.Name, err = stringField(doc, fieldName, true); err != nil {
		return nil, err
	}
	if p.Email, err = stringField(doc, fieldEmail, true); err != nil {
		return nil, err
	}
	if p.EventID, err = stringField(doc, fieldEventID, true); err != nil {
		return nil, err
	}
	ts, err := timeField(doc, fieldTimestamp, true)
	if err != nil {
		return nil, err
	}
	p.Timestamp = *ts
	if p.IsAttending, err = optionalBoolField(doc, fieldIsAttending); err != nil {
		return nil, err
	}
	return p, nil
}
