package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetupticket/internal/domain"
)

type registrationService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	recorder        domain.OutcomeRecorder
	logger          *slog.Logger
	callTimeout     time.Duration
	now             func() time.Time
}

// NewRegistrationService returns the registration workflow. Each store call is
// bounded by callTimeout; recorder may be nil.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	recorder domain.OutcomeRecorder,
	logger *slog.Logger,
	callTimeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		recorder:        recorder,
		logger:          logger,
		callTimeout:     callTimeout,
		now:             time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, event *domain.Event, name, email string) domain.RegistrationOutcome {
	outcome := s.register(ctx, event, name, email)
	if s.recorder != nil {
		s.recorder.RecordOutcome(outcome.Kind)
	}
	if outcome.Kind == domain.OutcomeStoreError {
		s.logger.ErrorContext(ctx, "registration failed", "err", outcome.Err)
	}
	return outcome
}

func (s *registrationService) register(ctx context.Context, event *domain.Event, name, email string) domain.RegistrationOutcome {
	if event == nil {
		return domain.NoActiveEvent()
	}

	existing, err := s.findExisting(ctx, email, event.ID)
	if err == nil {
		return domain.AlreadyRegistered(existing)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return storeError("find participant", err)
	}

	// Capacity is checked against the caller's snapshot of the event, so two
	// sessions racing at limit-1 can both pass.
	if event.IsFull() {
		return domain.CapacityReached()
	}

	p := domain.NewParticipant(name, email, event.ID, s.now().UTC())
	err = s.call(ctx, func(ctx context.Context) error {
		return s.participantRepo.Create(ctx, p)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// Lost the race against a concurrent registration; the unique index is authoritative.
		existing, ferr := s.findExisting(ctx, email, event.ID)
		if ferr != nil {
			return storeError("find participant after duplicate insert", ferr)
		}
		return domain.AlreadyRegistered(existing)
	}
	if err != nil {
		return storeError("create participant", err)
	}

	err = s.call(ctx, func(ctx context.Context) error {
		return s.eventRepo.IncrementRegistered(ctx, event.ID)
	})
	if err != nil {
		// Not rolled back: the counter now under-reports this participant.
		s.logger.ErrorContext(ctx, "participant stored but event counter not incremented",
			"participant_id", p.ID, "event_id", event.ID, "err", err)
		return storeError("increment registered participants", err)
	}

	return domain.Registered(p)
}

func (s *registrationService) findExisting(ctx context.Context, email, eventID string) (*domain.Participant, error) {
	var existing *domain.Participant
	err := s.call(ctx, func(ctx context.Context) error {
		var err error
		existing, err = s.participantRepo.FindByEmailAndEvent(ctx, email, eventID)
		return err
	})
	return existing, err
}

func (s *registrationService) call(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return fn(ctx)
}

func storeError(op string, err error) domain.RegistrationOutcome {
	return domain.StoreError(fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err))
}
