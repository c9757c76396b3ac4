package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetupticket/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) LoadActiveEvent(ctx context.Context) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load active event: %w", domain.ErrStore, err)
	}
	switch len(events) {
	case 0:
		return nil, domain.ErrNoActiveEvent
	case 1:
		return events[0], nil
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	s.logger.WarnContext(ctx, "more than one event flagged active", "event_ids", ids)
	return nil, domain.ErrAmbiguousActiveEvent
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get event: %w", domain.ErrStore, err)
	}
	return event, nil
}
