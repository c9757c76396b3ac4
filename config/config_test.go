package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("TICKET_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 720*time.Hour, cfg.TicketTTL)
	assert.Equal(t, devTicketSecret, cfg.TicketSecret)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("TICKET_SECRET", "s3cret")
	t.Setenv("TICKET_TTL", "48h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("EMAIL_PROVIDER", "ses")
	t.Setenv("EMAIL_FROM_ADDRESS", "tickets@example.com")
	t.Setenv("EMAIL_REPLY_TO", "organizers@example.com")
	t.Setenv("SES_CONFIGURATION_SET", "tickets")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "s3cret", cfg.TicketSecret)
	assert.Equal(t, 48*time.Hour, cfg.TicketTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "tickets@example.com", cfg.Email.FromAddress)
	assert.Equal(t, "organizers@example.com", cfg.Email.ReplyTo)
	assert.Equal(t, "tickets", cfg.Email.SESConfigurationSet)
	assert.True(t, cfg.Email.SESInsecureSkipVerify)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "unknown driver", env: map[string]string{"GO_ENV": "test", "STORE_DRIVER": "redis"}, wantErr: "STORE_DRIVER"},
		{name: "production without secret", env: map[string]string{"GO_ENV": "production", "TICKET_SECRET": ""}, wantErr: "TICKET_SECRET"},
		{name: "bad duration", env: map[string]string{"GO_ENV": "test", "STORE_TIMEOUT": "soon"}, wantErr: "parse env"},
		{name: "ses without sender", env: map[string]string{"GO_ENV": "test", "EMAIL_PROVIDER": "ses", "EMAIL_FROM_ADDRESS": ""}, wantErr: "EMAIL_FROM_ADDRESS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
