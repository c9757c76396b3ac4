package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupticket/internal/domain"
)

type fakeMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRenderer struct {
	name string
	data any
	err  error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.name, f.data = templateName, data
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendTicketConfirmation(t *testing.T) {
	data := &domain.TicketConfirmationEmailData{Email: "ana@x.com", Name: "Ana", Code: "ABC123"}

	tests := []struct {
		name     string
		mailer   *fakeMailer
		renderer *fakeRenderer
		data     *domain.TicketConfirmationEmailData
		wantErr  bool
		wantSent int
	}{
		{name: "sends rendered template", mailer: &fakeMailer{}, renderer: &fakeRenderer{}, data: data, wantSent: 1},
		{name: "nil data", mailer: &fakeMailer{}, renderer: &fakeRenderer{}, data: nil, wantErr: true},
		{name: "render error", mailer: &fakeMailer{}, renderer: &fakeRenderer{err: errors.New("bad template")}, data: data, wantErr: true},
		{name: "mailer error", mailer: &fakeMailer{err: errors.New("ses down")}, renderer: &fakeRenderer{}, data: data, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEmailService(tt.mailer, tt.renderer, discardLogger())
			err := svc.SendTicketConfirmation(context.Background(), tt.data)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ticket_confirmation", tt.renderer.name)
				assert.Equal(t, domain.EmailMessage{
					To:      "ana@x.com",
					Subject: "subject",
					HTML:    "<p>html</p>",
					Text:    "text",
					Kind:    "ticket_confirmation",
				}, tt.mailer.sent[0])
			}
			assert.Len(t, tt.mailer.sent, tt.wantSent)
		})
	}
}
