package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"meetupticket/internal/delivery/http/helpers"
)

// SessionCookie names the cookie that identifies a browser session.
const SessionCookie = "sid"

// InFlightGuard allows at most one guarded request per session at a time.
// A session is the sid cookie, or the client address when the request
// carries no cookie.
type InFlightGuard struct {
	busy   sync.Map
	secure bool
}

// NewInFlightGuard returns a guard. secure sets the Secure flag on issued cookies.
func NewInFlightGuard(secure bool) *InFlightGuard {
	return &InFlightGuard{secure: secure}
}

// Session issues the sid cookie to requests that do not carry one, so the
// first submit from a page already belongs to a session.
func (g *InFlightGuard) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionID(r); !ok {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
				Secure:   g.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r)
	})
}

// Wrap rejects a request with a 429 JSON error while another request from
// the same session is still being served by next.
func (g *InFlightGuard) Wrap(next http.Handler) http.Handler {
	return g.WrapWith(next, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeTooManyRequests,
			"a registration for this session is already in progress")
	}))
}

// WrapWith is Wrap with busy serving the rejected request.
func (g *InFlightGuard) WrapWith(next, busy http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := sessionKey(r)
		if _, loaded := g.busy.LoadOrStore(key, struct{}{}); loaded {
			busy.ServeHTTP(w, r)
			return
		}
		defer g.busy.Delete(key)
		next.ServeHTTP(w, r)
	})
}

func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func sessionKey(r *http.Request) string {
	if sid, ok := sessionID(r); ok {
		return "sid:" + sid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}
