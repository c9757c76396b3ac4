package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"meetupticket/internal/delivery/http/controllers"
	"meetupticket/internal/delivery/http/helpers"
	"meetupticket/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Page routes issue the session cookie; registration submits go through
// guard so a session cannot run two at once.
func NewRouter(
	pages *controllers.PageController,
	registrations *controllers.RegistrationController,
	guard *middleware.InFlightGuard,
	metricsHandler http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Pages
	mux.Handle("GET /{$}", guard.Session(http.HandlerFunc(pages.Landing)))
	mux.Handle("GET /register", guard.Session(http.HandlerFunc(pages.Form)))
	mux.Handle("POST /register", guard.WrapWith(http.HandlerFunc(pages.Register), http.HandlerFunc(pages.Busy)))
	mux.Handle("GET /ticket", guard.Session(http.HandlerFunc(pages.Ticket)))

	// API Routes
	mux.HandleFunc("GET /api/events/active", registrations.GetActiveEvent)
	mux.Handle("POST /api/registrations", guard.Wrap(http.HandlerFunc(registrations.Register)))
	mux.HandleFunc("GET /api/tickets/{token}", registrations.GetTicket)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metricsHandler)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
