package discord

import (
	"errors"
	"fmt"
)

// PermissionAdministrator is the Administrator bit in Discord's permission
// bitmask. It is the sole gate for a "manageable server" in the dashboard.
const PermissionAdministrator = 1 << 3

// User is the identity record returned by GET /users/@me.
type User struct {
	// ID is the user snowflake.
	ID string `json:"id"`

	// Username is the account name.
	Username string `json:"username"`

	// Discriminator is the legacy four-digit tag ("0" for migrated accounts).
	Discriminator string `json:"discriminator"`

	// Avatar is the avatar hash, empty when the user has no custom avatar.
	Avatar string `json:"avatar"`
}

// Guild is a partial guild record as returned by GET /users/@me/guilds.
type Guild struct {
	// ID is the guild snowflake.
	ID string `json:"id"`

	// Name is the guild name.
	Name string `json:"name"`

	// Icon is the guild icon hash, empty when the guild has no icon.
	Icon string `json:"icon"`

	// Owner reports whether the current user owns the guild.
	Owner bool `json:"owner"`

	// Permissions is the permission bitmask the current user holds.
	Permissions int64 `json:"permissions"`

	// MemberCount is the approximate member count, present when the
	// listing was requested with counts (and in fixture data).
	MemberCount int `json:"approximate_member_count,omitempty"`
}

// HasAdmin reports whether the user holds the Administrator permission in
// the guild.
func (g Guild) HasAdmin() bool {
	return g.Permissions&PermissionAdministrator != 0
}

// RoleLabel is the ownership label shown on a server card.
func (g Guild) RoleLabel() string {
	if g.Owner {
		return "Owner"
	}
	return "Administrator"
}

// APIError represents a failed Discord API request.
type APIError struct {
	// Op is the operation that failed (e.g., "current_user", "user_guilds").
	Op string

	// StatusCode is the HTTP status returned by Discord, 0 for transport
	// failures.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("discord %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("discord %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a Discord API rejection of the
// access token (HTTP 401). This is the only condition that forces a logout.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}
