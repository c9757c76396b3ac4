package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"meetupticket/internal/domain"
)

func TestEventService_LoadActiveEvent(t *testing.T) {
	e1 := &domain.Event{ID: "E1", Title: "Meetup", Active: true}
	e2 := &domain.Event{ID: "E2", Title: "Other", Active: true}
	errBoom := errors.New("connection refused")

	tests := []struct {
		name    string
		repo    *mockEventRepository
		want    *domain.Event
		wantErr []error
	}{
		{name: "single active event", repo: &mockEventRepository{active: []*domain.Event{e1}}, want: e1},
		{name: "none", repo: &mockEventRepository{}, wantErr: []error{domain.ErrNoActiveEvent}},
		{
			name:    "two active events",
			repo:    &mockEventRepository{active: []*domain.Event{e1, e2}},
			wantErr: []error{domain.ErrAmbiguousActiveEvent},
		},
		{
			name:    "store error is surfaced",
			repo:    &mockEventRepository{listErr: errBoom},
			wantErr: []error{domain.ErrStore, errBoom},
		},
		{
			name:    "malformed document",
			repo:    &mockEventRepository{listErr: domain.ErrMalformedDocument},
			wantErr: []error{domain.ErrStore, domain.ErrMalformedDocument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(tt.repo, discardLogger(), time.Second)
			got, err := svc.LoadActiveEvent(context.Background())
			if len(tt.wantErr) > 0 {
				for _, want := range tt.wantErr {
					require.ErrorIs(t, err, want)
				}
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEventService_GetEvent(t *testing.T) {
	e1 := &domain.Event{ID: "E1", Title: "Meetup"}
	svc := NewEventService(&mockEventRepository{events: map[string]*domain.Event{"E1": e1}}, discardLogger(), time.Second)

	got, err := svc.GetEvent(context.Background(), "E1")
	require.NoError(t, err)
	require.Equal(t, e1, got)

	_, err = svc.GetEvent(context.Background(), "E9")
	require.ErrorIs(t, err, domain.ErrNotFound)

	failing := NewEventService(&mockEventRepository{getErr: errors.New("timeout")}, discardLogger(), time.Second)
	_, err = failing.GetEvent(context.Background(), "E1")
	require.ErrorIs(t, err, domain.ErrStore)
}
