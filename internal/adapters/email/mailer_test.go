package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupticket/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSender struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSender) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr bool
	}{
		{name: "noop", config: MailerConfig{Provider: ProviderNoop}},
		{name: "empty provider", config: MailerConfig{}},
		{name: "unknown provider", config: MailerConfig{Provider: "smtp"}},
		{
			name:    "ses",
			config:  MailerConfig{Provider: ProviderSES, FromAddress: "tickets@example.com", SES: SESConfig{Region: "eu-west-1"}},
			wantSES: true,
		},
		{name: "ses without from address", config: MailerConfig{Provider: ProviderSES}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, discardLogger())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
			if !tt.wantSES {
				assert.NoError(t, m.Send(context.Background(), domain.EmailMessage{To: "a@example.com", Subject: "s"}))
			}
		})
	}
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSender{}
	m := newSESMailer(client, MailerConfig{
		FromAddress: "tickets@example.com",
		FromName:    "Meetup Tickets",
		ReplyTo:     "organizers@example.com",
		SES:         SESConfig{ConfigurationSet: "tickets"},
	}, discardLogger())

	err := m.Send(context.Background(), domain.EmailMessage{
		To:      "ana@x.com",
		Subject: "Your ticket",
		HTML:    "<p>ABC123</p>",
		Text:    "ABC123",
		Kind:    "ticket_confirmation",
	})
	require.NoError(t, err)

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, `"Meetup Tickets" <tickets@example.com>`, aws.ToString(in.Source))
	assert.Equal(t, []string{"ana@x.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"organizers@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "tickets", aws.ToString(in.ConfigurationSetName))
	assert.Equal(t, "Your ticket", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "<p>ABC123</p>", aws.ToString(in.Message.Body.Html.Data))
	assert.Equal(t, "ABC123", aws.ToString(in.Message.Body.Text.Data))
	assert.Equal(t, charset, aws.ToString(in.Message.Body.Text.Charset))
	require.Len(t, in.Tags, 1)
	assert.Equal(t, kindTag, aws.ToString(in.Tags[0].Name))
	assert.Equal(t, "ticket_confirmation", aws.ToString(in.Tags[0].Value))
}

func TestSESMailer_SendMinimal(t *testing.T) {
	client := &fakeSender{}
	m := newSESMailer(client, MailerConfig{FromAddress: "tickets@example.com"}, discardLogger())

	require.NoError(t, m.Send(context.Background(), domain.EmailMessage{To: "ana@x.com", Subject: "s", Text: "t"}))

	in := client.input
	assert.Equal(t, "<tickets@example.com>", aws.ToString(in.Source))
	assert.Nil(t, in.ReplyToAddresses)
	assert.Nil(t, in.ConfigurationSetName)
	assert.Nil(t, in.Message.Body.Html)
	assert.Empty(t, in.Tags)
}

func TestSESMailer_SendError(t *testing.T) {
	client := &fakeSender{err: errors.New("throttled")}
	m := newSESMailer(client, MailerConfig{FromAddress: "tickets@example.com"}, discardLogger())

	err := m.Send(context.Background(), domain.EmailMessage{To: "ana@x.com", Kind: "ticket_confirmation"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.err)
	assert.Contains(t, err.Error(), "ticket_confirmation")
}
