package controllers

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"meetupticket/internal/delivery/http/helpers"
	"meetupticket/internal/domain"
)

//go:embed views/*.html
var viewsFS embed.FS

var views = template.Must(template.ParseFS(viewsFS, "views/*.html"))

// TicketCookie holds the signed ticket pass after a successful registration.
const TicketCookie = "ticket"

// User-visible messages, in the language of the event pages.
const (
	msgNoEvents        = "No hay eventos disponibles"
	msgEventFull       = "El evento alcanzó el cupo máximo de participantes."
	msgTryAgain        = "No pudimos completar el registro. Intentá nuevamente."
	msgRequiredFields  = "Ingresá tu nombre y un email válido."
	msgEventLoadFailed = "No pudimos cargar el evento. Intentá nuevamente más tarde."
	msgInProgress      = "Ya estamos procesando tu registro. Esperá un momento."
)

// RegisterForm is the form body of POST /register.
type RegisterForm struct {
	Name  string `form:"name" validate:"required,max=200"`
	Email string `form:"email" validate:"required,max=254"`
}

// Validate implements Validator.
func (f RegisterForm) Validate() []string {
	return helpers.ValidateStruct(f)
}

type formView struct {
	Event   *domain.Event
	Name    string
	Email   string
	Message string
}

type ticketView struct {
	Pass  domain.TicketPass
	Event *domain.Event
}

type messageView struct {
	Message string
}

// PageController serves the HTML registration flow.
type PageController struct {
	Logger        *slog.Logger
	Events        domain.EventService
	Desk          domain.TicketDesk
	Tickets       domain.TicketService
	TicketTTL     time.Duration
	SecureCookies bool
}

func NewPageController(logger *slog.Logger, events domain.EventService, desk domain.TicketDesk, tickets domain.TicketService, ticketTTL time.Duration, secureCookies bool) *PageController {
	return &PageController{
		Logger:        logger,
		Events:        events,
		Desk:          desk,
		Tickets:       tickets,
		TicketTTL:     ticketTTL,
		SecureCookies: secureCookies,
	}
}

// Landing renders the community page that leads to the registration form.
func (c *PageController) Landing(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "landing", nil)
}

// Form renders the registration form for the active event, or the
// no-events page when there is none.
func (c *PageController) Form(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.LoadActiveEvent(r.Context())
	switch {
	case err == nil:
		c.render(w, r, http.StatusOK, "form", formView{Event: event})
	case errors.Is(err, domain.ErrNoActiveEvent):
		c.render(w, r, http.StatusOK, "message", messageView{Message: msgNoEvents})
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.render(w, r, http.StatusServiceUnavailable, "message", messageView{Message: msgEventLoadFailed})
	}
}

// Register runs the registration workflow for the submitted form. On success
// the signed pass is stored in the ticket cookie and the browser is sent to
// the ticket page; otherwise the form is shown again with a message.
func (c *PageController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.render(w, r, http.StatusBadRequest, "form", formView{Message: msgRequiredFields})
		return
	}
	form := RegisterForm{
		Name:  strings.TrimSpace(r.PostForm.Get("name")),
		Email: normalizeEmail(r.PostForm.Get("email")),
	}
	if errs := form.Validate(); len(errs) > 0 {
		view := formView{Event: c.formEvent(r), Name: form.Name, Email: form.Email, Message: msgRequiredFields}
		c.render(w, r, http.StatusBadRequest, "form", view)
		return
	}

	sub := c.Desk.Submit(r.Context(), form.Name, form.Email)
	view := formView{Event: sub.Event, Name: form.Name, Email: form.Email}

	switch {
	case sub.Ticket != nil:
		c.setTicketCookie(w, sub.Ticket.Token)
		http.Redirect(w, r, "/ticket", http.StatusSeeOther)
	case sub.Outcome.Kind == domain.OutcomeCapacityReached:
		view.Message = msgEventFull
		c.render(w, r, http.StatusConflict, "form", view)
	case sub.Outcome.Kind == domain.OutcomeNoActiveEvent:
		view.Message = msgNoEvents
		c.render(w, r, http.StatusNotFound, "form", view)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", sub.Outcome.Err)
		view.Message = msgTryAgain
		c.render(w, r, http.StatusServiceUnavailable, "form", view)
	}
}

// Busy answers a submit made while another one from the same session is
// still running. The form is shown again with the entered values.
func (c *PageController) Busy(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	view := formView{
		Event:   c.formEvent(r),
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   normalizeEmail(r.PostForm.Get("email")),
		Message: msgInProgress,
	}
	c.render(w, r, http.StatusTooManyRequests, "form", view)
}

// formEvent loads the active event for re-rendering the form. The form is
// still shown without the event header when it cannot be loaded.
func (c *PageController) formEvent(r *http.Request) *domain.Event {
	event, err := c.Events.LoadActiveEvent(r.Context())
	if err != nil {
		if !errors.Is(err, domain.ErrNoActiveEvent) {
			c.Logger.ErrorContext(r.Context(), "load active event failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		return nil
	}
	return event
}

// Ticket renders the ticket for the pass in the ticket cookie or the t query
// parameter. A missing or invalid pass redirects to the home page.
func (c *PageController) Ticket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("t")
	fromQuery := token != ""
	if !fromQuery {
		if cookie, err := r.Cookie(TicketCookie); err == nil {
			token = cookie.Value
		}
	}
	pass, err := c.Tickets.Open(token)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	event, err := c.Events.GetEvent(r.Context(), pass.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		c.render(w, r, http.StatusServiceUnavailable, "message", messageView{Message: msgEventLoadFailed})
		return
	}
	if fromQuery {
		c.setTicketCookie(w, token)
	}
	c.render(w, r, http.StatusOK, "ticket", ticketView{Pass: pass, Event: event})
}

func (c *PageController) setTicketCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TicketCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TicketTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *PageController) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf strings.Builder
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		c.Logger.ErrorContext(r.Context(), "render failed", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
