// Package document implements the typed repositories on top of a
// domain.DocumentStore. Documents are decoded strictly: a missing or mistyped
// field fails with domain.ErrMalformedDocument instead of yielding zero values.
package document

import (
	"context"
	"fmt"

	"meetupticket/internal/domain"
)

// Field names of documents in the events collection.
const (
	fieldTitle                  = "title"
	fieldDescription            = "description"
	fieldDate                   = "date"
	fieldActive                 = "active"
	fieldParticipantLimit       = "participantLimit"
	fieldRegisteredParticipants = "registeredParticipants"
	fieldAgenda                 = "agenda"
)

type eventRepository struct {
	store domain.DocumentStore
}

func NewEventRepository(store domain.DocumentStore) domain.EventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	docs, err := r.store.Find(ctx, domain.CollectionEvents, []domain.Filter{domain.Eq(fieldActive, true)})
	if err != nil {
		return nil, fmt.Errorf("find active events: %w", err)
	}
	events := make([]*domain.Event, 0, len(docs))
	for _, doc := range docs {
		e, err := decodeEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	doc, err := r.store.Get(ctx, domain.CollectionEvents, id)
	if err != nil {
		return nil, err
	}
	return decodeEvent(doc)
}

func (r *eventRepository) IncrementRegistered(ctx context.Context, id string) error {
	return r.store.Increment(ctx, domain.CollectionEvents, id, fieldRegisteredParticipants, 1)
}

func decodeEvent(doc domain.Document) (*domain.Event, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("%w: event without id", domain.ErrMalformedDocument)
	}
	e := &domain.Event{ID: doc.ID}
	var err error
	if e.Title, err = stringField(doc, fieldTitle, true); err != nil {
		return nil, err
	}
	if e.Description, err = stringField(doc, fieldDescription, false); err != nil {
		return nil, err
	}
	if e.Date, err = timeField(doc, fieldDate, false); err != nil {
		return nil, err
	}
	if e.Active, err = boolField(doc, fieldActive); err != nil {
		return nil, err
	}
	if e.ParticipantLimit, err = optionalIntField(doc, fieldParticipantLimit); err != nil {
		return nil, err
	}
	if e.RegisteredParticipants, err = intField(doc, fieldRegisteredParticipants); err != nil {
		return nil, err
	}
	if e.Agenda, err = agendaField(doc, fieldAgenda); err != nil {
		return nil, err
	}
	return e, nil
}
