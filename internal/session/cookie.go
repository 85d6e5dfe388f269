package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the browser cookie slot holding the session ID.
const CookieName = "shockwave_session"

// Scope selects the lifetime of the browser cookie. ScopeSession lasts for
// the browser session only; ScopePersistent survives restarts for the store
// TTL. These correspond to the sessionStorage/localStorage split the
// dashboard variants used.
type Scope string

const (
	ScopeSession    Scope = "session"
	ScopePersistent Scope = "persistent"
)

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}

// ReadCookie returns the session ID from the request, or "" when absent.
func ReadCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// WriteCookie sets the session ID cookie with the lifetime implied by scope.
func WriteCookie(w http.ResponseWriter, id string, scope Scope, ttl time.Duration) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if scope == ScopePersistent {
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, c)
}

// ClearCookie expires the session ID cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
