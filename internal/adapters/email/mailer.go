package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"meetupticket/internal/domain"
)

const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"

	charset = "UTF-8"
	kindTag = "kind"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	ConfigurationSet   string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	ReplyTo     string
	SES         SESConfig
}

// sender is the part of the SES client used to deliver confirmations.
type sender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer creates the mailer for config.Provider. An empty provider means
// noop; an unknown one is logged and also falls back to noop.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case ProviderSES:
		if config.FromAddress == "" {
			return nil, errors.New("ses mailer requires a from address")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES, use only in development")
		}
		return newSESMailer(newSESClient(config.SES), config, logger), nil
	case ProviderNoop, "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, confirmations will not be delivered", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

func newSESClient(cfg SESConfig) *ses.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	return ses.NewFromConfig(aws.Config{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		HTTPClient:  &http.Client{Transport: transport},
	})
}

type sesMailer struct {
	client    sender
	source    string
	replyTo   []string
	configSet *string
	logger    *slog.Logger
}

func newSESMailer(client sender, config MailerConfig, logger *slog.Logger) *sesMailer {
	m := &sesMailer{
		client: client,
		source: (&mail.Address{Name: config.FromName, Address: config.FromAddress}).String(),
		logger: logger,
	}
	if config.ReplyTo != "" {
		m.replyTo = []string{config.ReplyTo}
	}
	if config.SES.ConfigurationSet != "" {
		m.configSet = aws.String(config.SES.ConfigurationSet)
	}
	return m
}

func (s *sesMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	out, err := s.client.SendEmail(ctx, s.input(msg))
	if err != nil {
		return fmt.Errorf("failed to send %s email via SES: %w", msg.Kind, err)
	}
	s.logger.InfoContext(ctx, "email sent via SES", "to", msg.To, "kind", msg.Kind, "message_id", aws.ToString(out.MessageId))
	return nil
}

func (s *sesMailer) input(msg domain.EmailMessage) *ses.SendEmailInput {
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = content(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = content(msg.Text)
	}
	input := &ses.SendEmailInput{
		Source:               aws.String(s.source),
		Destination:          &types.Destination{ToAddresses: []string{msg.To}},
		ReplyToAddresses:     s.replyTo,
		ConfigurationSetName: s.configSet,
		Message:              &types.Message{Subject: content(msg.Subject), Body: body},
	}
	if msg.Kind != "" {
		input.Tags = []types.MessageTag{{Name: aws.String(kindTag), Value: aws.String(msg.Kind)}}
	}
	return input
}

func content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String(charset)}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	n.logger.InfoContext(ctx, "email not delivered (noop mailer)", "to", msg.To, "kind", msg.Kind, "subject", msg.Subject)
	return nil
}
