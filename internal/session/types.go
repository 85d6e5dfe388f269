package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// Session is the authenticated-user record created when the OAuth callback
// completes. At most one Session exists per browser scope; the scope is the
// session ID carried in the browser cookie.
type Session struct {
	// UserID is the Discord user snowflake.
	UserID string `json:"id"`

	// Username is the Discord username.
	Username string `json:"username"`

	// Discriminator is the legacy four-digit tag ("0" for migrated accounts).
	Discriminator string `json:"discriminator"`

	// AvatarHash is the user's avatar hash. Empty when the user has no
	// custom avatar, in which case a default avatar is selected from the
	// discriminator.
	AvatarHash string `json:"avatar"`

	// AccessToken is the Discord OAuth access token used for guild listing.
	// May be empty in fixture sessions.
	AccessToken string `json:"accessToken,omitempty"`
}

// Valid reports whether the session carries the minimum identifying fields.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != "" && s.Username != ""
}

// EncodePayload serializes a session into the wire form carried by the
// "user" query parameter on the OAuth redirect back to the dashboard.
func EncodePayload(s *Session) (string, error) {
	if !s.Valid() {
		return "", fmt.Errorf("refusing to encode invalid session")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session payload: %w", err)
	}
	return string(data), nil
}

// DecodePayload parses the "user" query parameter back into a Session.
// A payload that parses but lacks the identifying fields is rejected.
func DecodePayload(payload string) (*Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("malformed session payload: %w", err)
	}
	if !s.Valid() {
		return nil, fmt.Errorf("malformed session payload: missing user id or username")
	}
	return &s, nil
}
