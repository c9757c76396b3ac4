package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupticket/internal/adapters/ticket"
	"meetupticket/internal/delivery/http/controllers"
	"meetupticket/internal/delivery/http/middleware"
	"meetupticket/internal/domain"
	"meetupticket/internal/metrics"
	"meetupticket/internal/repository/document"
	"meetupticket/internal/repository/memory"
	"meetupticket/internal/services"
)

// newTestServer wires the full stack on the in-memory store.
func newTestServer(t *testing.T, limit *int) (*httptest.Server, *memory.Store) {
	return newTestServerWithDesk(t, limit, nil)
}

// newTestServerWithDesk is newTestServer with desk replacing the ticket desk
// when it is not nil.
func newTestServerWithDesk(t *testing.T, limit *int, desk domain.TicketDesk) (*httptest.Server, *memory.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	require.NoError(t, store.EnsureIndexes(context.Background()))
	fields := map[string]any{
		"title":                  "Go Meetup",
		"active":                 true,
		"registeredParticipants": 0,
		"agenda":                 []any{map[string]any{"time": "18:00", "topic": "Doors open"}},
	}
	if limit != nil {
		fields["participantLimit"] = *limit
	}
	store.Put("events", "E1", fields)

	m := metrics.New()
	eventRepo := document.NewEventRepository(store)
	participantRepo := document.NewParticipantRepository(store)
	eventSvc := services.NewEventService(eventRepo, logger, time.Second)
	regSvc := services.NewRegistrationService(eventRepo, participantRepo, m, logger, time.Second)
	signer, err := ticket.NewJWTSigner("test-secret")
	require.NoError(t, err)
	ticketSvc := services.NewTicketService(signer, ticket.NewCoder("test-secret"), time.Hour)
	if desk == nil {
		desk = services.NewTicketDesk(eventSvc, regSvc, ticketSvc, nil, m, "http://localhost", logger)
	}

	mux := NewRouter(
		controllers.NewPageController(logger, eventSvc, desk, ticketSvc, time.Hour, false),
		controllers.NewRegistrationController(logger, eventSvc, desk, ticketSvc),
		middleware.NewInFlightGuard(false),
		m.Handler(),
	)
	srv := httptest.NewServer(middleware.Metrics(m, mux))
	t.Cleanup(srv.Close)
	return srv, store
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func TestRouter_RegistrationFlow(t *testing.T) {
	srv, store := newTestServer(t, nil)
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Hola!")
	require.NotNil(t, findCookie(resp.Cookies(), middleware.SessionCookie))

	resp, err = client.Get(srv.URL + "/register")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Go Meetup")

	resp, err = client.PostForm(srv.URL+"/register", map[string][]string{"name": {"Ana"}, "email": {"ana@example.com"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/ticket", resp.Header.Get("Location"))

	ticketCookie := findCookie(resp.Cookies(), controllers.TicketCookie)
	require.NotNil(t, ticketCookie)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ticket", nil)
	req.AddCookie(ticketCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Ana, estará presente esta meet!")
	assert.Contains(t, string(body), "Doors open")

	// a second submit is idempotent
	resp, err = client.Post(srv.URL+"/api/registrations", "application/json", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := store.Get(context.Background(), "events", "E1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.Fields["registeredParticipants"])

	resp, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `meetupticket_registrations_total{outcome="registered"} 1`)
	assert.Contains(t, string(body), `meetupticket_registrations_total{outcome="already_registered"} 1`)
}

func TestRouter_CapacityAndHealth(t *testing.T) {
	limit := 1
	srv, _ := newTestServer(t, &limit)
	client := noRedirectClient()

	resp, err := client.Post(srv.URL+"/api/registrations", "application/json", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/api/registrations", "application/json", strings.NewReader(`{"name":"Bob","email":"bob@example.com"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "capacity_reached")

	resp, err = client.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/does-not-exist")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_LocalAddressRegisters(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/api/registrations", "application/json", strings.NewReader(`{"name":"Ana","email":"ana@localhost"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(body), `"email":"ana@localhost"`)
}

// blockingDesk holds every submit until release is closed.
type blockingDesk struct {
	entered chan struct{}
	release chan struct{}
}

func newBlockingDesk() *blockingDesk {
	return &blockingDesk{entered: make(chan struct{}, 2), release: make(chan struct{})}
}

func (d *blockingDesk) Submit(ctx context.Context, name, email string) domain.Submission {
	d.entered <- struct{}{}
	<-d.release
	return domain.Submission{Outcome: domain.CapacityReached()}
}

func TestRouter_DoubleSubmitAfterLanding(t *testing.T) {
	desk := newBlockingDesk()
	srv, _ := newTestServerWithDesk(t, nil, desk)
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	sid := findCookie(resp.Cookies(), middleware.SessionCookie)
	require.NotNil(t, sid)

	post := func() (*http.Response, error) {
		req, _ := http.NewRequest(http.MethodPost, srv.URL+"/register", strings.NewReader("name=Ana&email=ana%40example.com"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(sid)
		return client.Do(req)
	}

	var wg sync.WaitGroup
	var first *http.Response
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstErr = post()
	}()
	<-desk.entered

	second, err := post()
	require.NoError(t, err)
	body, _ := io.ReadAll(second.Body)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Contains(t, second.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Ya estamos procesando tu registro")

	close(desk.release)
	wg.Wait()
	require.NoError(t, firstErr)
	first.Body.Close()
	assert.Equal(t, http.StatusConflict, first.StatusCode)
}

func TestRouter_CookielessDoubleSubmit(t *testing.T) {
	desk := newBlockingDesk()
	srv, _ := newTestServerWithDesk(t, nil, desk)

	post := func() (*http.Response, error) {
		return http.Post(srv.URL+"/api/registrations", "application/json", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	}

	var wg sync.WaitGroup
	var first *http.Response
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, firstErr = post()
	}()
	<-desk.entered

	second, err := post()
	require.NoError(t, err)
	body, _ := io.ReadAll(second.Body)
	second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Contains(t, string(body), "too_many_requests")

	close(desk.release)
	wg.Wait()
	require.NoError(t, firstErr)
	first.Body.Close()
	assert.Equal(t, http.StatusConflict, first.StatusCode)
}
