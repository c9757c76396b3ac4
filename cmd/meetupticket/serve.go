package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meetupticket/config"
	"meetupticket/internal/adapters/email"
	"meetupticket/internal/adapters/ticket"
	deliveryhttp "meetupticket/internal/delivery/http"
	"meetupticket/internal/delivery/http/controllers"
	"meetupticket/internal/delivery/http/middleware"
	"meetupticket/internal/metrics"
	"meetupticket/internal/repository/document"
	"meetupticket/internal/services"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg)
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	handler, err := newHandler(cfg, logger, store)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "driver", cfg.StoreDriver, "version", Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newHandler wires repositories, services and controllers into the root handler.
func newHandler(cfg *config.Config, logger *slog.Logger, store documentStore) (http.Handler, error) {
	m := metrics.New()

	eventRepo := document.NewEventRepository(store)
	participantRepo := document.NewParticipantRepository(store)

	signer, err := ticket.NewJWTSigner(cfg.TicketSecret)
	if err != nil {
		return nil, err
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		ReplyTo:     cfg.Email.ReplyTo,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			ConfigurationSet:   cfg.Email.SESConfigurationSet,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}

	eventSvc := services.NewEventService(eventRepo, logger, cfg.StoreTimeout)
	registrationSvc := services.NewRegistrationService(eventRepo, participantRepo, m, logger, cfg.StoreTimeout)
	ticketSvc := services.NewTicketService(signer, ticket.NewCoder(cfg.TicketSecret), cfg.TicketTTL)
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	desk := services.NewTicketDesk(eventSvc, registrationSvc, ticketSvc, emailSvc, m, cfg.BaseURL, logger)

	mux := deliveryhttp.NewRouter(
		controllers.NewPageController(logger, eventSvc, desk, ticketSvc, cfg.TicketTTL, cfg.IsProduction()),
		controllers.NewRegistrationController(logger, eventSvc, desk, ticketSvc),
		middleware.NewInFlightGuard(cfg.IsProduction()),
		m.Handler(),
	)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.Metrics(m, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	return handler, nil
}
