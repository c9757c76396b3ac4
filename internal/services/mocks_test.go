package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"meetupticket/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockEventRepository implements domain.EventRepository for tests.
type mockEventRepository struct {
	active       []*domain.Event
	events       map[string]*domain.Event
	listErr      error
	getErr       error
	incrementErr error
	increments   map[string]int
}

func (m *mockEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.active, nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) IncrementRegistered(ctx context.Context, id string) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	if m.increments == nil {
		m.increments = make(map[string]int)
	}
	m.increments[id]++
	return nil
}

// mockParticipantRepository implements domain.ParticipantRepository for tests.
// block makes FindByEmailAndEvent wait for ctx cancellation.
type mockParticipantRepository struct {
	byKey     map[string]*domain.Participant
	findErr   error
	createErr error
	block     bool
	findCalls int
	created   []*domain.Participant
	onCreate  func(p *domain.Participant)
}

func (m *mockParticipantRepository) FindByEmailAndEvent(ctx context.Context, email, eventID string) (*domain.Participant, error) {
	m.findCalls++
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.byKey[email+":"+eventID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	if m.onCreate != nil {
		m.onCreate(p)
	}
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = "p-new"
	m.created = append(m.created, p)
	return nil
}

// countingRecorder implements domain.OutcomeRecorder.
type countingRecorder struct {
	mu     sync.Mutex
	counts map[domain.OutcomeKind]int
}

func (r *countingRecorder) RecordOutcome(kind domain.OutcomeKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = make(map[domain.OutcomeKind]int)
	}
	r.counts[kind]++
}
