// Package session implements the dashboard's session store.
//
// A Session is the record created when a user completes the Discord OAuth
// flow. It is keyed by a random session ID carried in an HttpOnly cookie and
// persisted through the Store interface, so handlers and tests can swap in
// an in-memory fake. The package also provides the wire codec for the
// "user" query parameter the OAuth exchange endpoint redirects back with.
//
// Invariant: at most one Session exists per session ID at a time. Sessions
// are never validated for token freshness locally; an expired access token
// is only discovered when a downstream Discord request is rejected.
package session
