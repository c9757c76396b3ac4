package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"meetupticket/internal/delivery/http/helpers"
	"meetupticket/internal/domain"
)

// normalizeEmail trims and lowercases an address so that the duplicate check
// treats "Ana@X.com " and "ana@x.com" as the same participant.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest is the request body for POST /api/registrations.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,max=254"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	return helpers.ValidateStruct(r)
}

// RegistrationResponse is the data returned by POST /api/registrations for
// registered and already registered participants.
type RegistrationResponse struct {
	Outcome     domain.OutcomeKind  `json:"outcome"`
	Participant *domain.Participant `json:"participant"`
	Ticket      string              `json:"ticket"`
	Code        string              `json:"code"`
}

// RegistrationSuccessResponse is the success response envelope for POST /api/registrations (201, 200).
type RegistrationSuccessResponse struct {
	Data  RegistrationResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ActiveEventSuccessResponse is the success response envelope for GET /api/events/active (200).
type ActiveEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TicketResponse is the data returned by GET /api/tickets/{token}.
type TicketResponse struct {
	Pass       domain.TicketPass   `json:"pass"`
	EventTitle string              `json:"event_title"`
	Agenda     []domain.AgendaItem `json:"agenda"`
}

// TicketSuccessResponse is the success response envelope for GET /api/tickets/{token} (200).
type TicketSuccessResponse struct {
	Data  TicketResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Events  domain.EventService
	Desk    domain.TicketDesk
	Tickets domain.TicketService
}

func NewRegistrationController(logger *slog.Logger, events domain.EventService, desk domain.TicketDesk, tickets domain.TicketService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Events:  events,
		Desk:    desk,
		Tickets: tickets,
	}
}

// GetActiveEvent godoc
// @Summary Get the active event
// @Description Returns the single event flagged active, including capacity and agenda.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ActiveEventSuccessResponse "data contains the active event"
// @Failure 404 {object} helpers.APIResponse "error.code: no_active_event"
// @Failure 409 {object} helpers.APIResponse "error.code: ambiguous_active_event"
// @Failure 503 {object} helpers.APIResponse "error.code: store_error"
// @Router /api/events/active [get]
func (c *RegistrationController) GetActiveEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.LoadActiveEvent(r.Context())
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusOK, event)
	case errors.Is(err, domain.ErrNoActiveEvent):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNoActiveEvent, "no active event")
	case errors.Is(err, domain.ErrAmbiguousActiveEvent):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAmbiguousActiveEvent, "more than one event is active")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreError, "event store unavailable")
	}
}

// Register godoc
// @Summary Register for the active event
// @Description Registers name and email for the active event. Registering an email twice is not an error: the existing registration is returned with status 200.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Participant name and email"
// @Success 201 {object} controllers.RegistrationSuccessResponse "outcome registered"
// @Success 200 {object} controllers.RegistrationSuccessResponse "outcome already_registered"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: no_active_event"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_reached"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 503 {object} helpers.APIResponse "error.code: store_error"
// @Router /api/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sub := c.Desk.Submit(r.Context(), strings.TrimSpace(req.Name), normalizeEmail(req.Email))

	switch {
	case sub.Ticket != nil:
		status := http.StatusOK
		if sub.Outcome.Kind == domain.OutcomeRegistered {
			status = http.StatusCreated
		}
		helpers.WriteJSONSuccess(w, status, RegistrationResponse{
			Outcome:     sub.Outcome.Kind,
			Participant: sub.Outcome.Participant,
			Ticket:      sub.Ticket.Token,
			Code:        sub.Ticket.Pass.Code,
		})
	case sub.Outcome.Kind == domain.OutcomeCapacityReached:
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityReached, "the event is full")
	case sub.Outcome.Kind == domain.OutcomeNoActiveEvent:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNoActiveEvent, "no active event")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", sub.Outcome.Err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreError, "registration could not be completed, try again")
	}
}

// GetTicket godoc
// @Summary Open a ticket pass
// @Description Verifies a signed ticket pass and returns it with the event agenda.
// @Tags tickets
// @Produce json
// @Param token path string true "Signed ticket pass"
// @Success 200 {object} controllers.TicketSuccessResponse "data contains the pass and agenda"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_error"
// @Router /api/tickets/{token} [get]
func (c *RegistrationController) GetTicket(w http.ResponseWriter, r *http.Request) {
	pass, err := c.Tickets.Open(r.PathValue("token"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "ticket not found or expired")
		return
	}
	event, err := c.Events.GetEvent(r.Context(), pass.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeStoreError, "event store unavailable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TicketResponse{Pass: pass, EventTitle: event.Title, Agenda: event.Agenda})
}
