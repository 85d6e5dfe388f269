package dashboard

import (
	"github.com/thetomat/tomat/internal/discord"
	"github.com/thetomat/tomat/internal/session"
)

// StateKind enumerates the dashboard view states. Exactly one state is
// active per page resolution.
type StateKind int

const (
	// StateAuthRequired prompts the user to log in with Discord.
	StateAuthRequired StateKind = iota

	// StateLoading is shown while the guild listing is outstanding.
	StateLoading

	// StateError shows a failure message with a retry affordance.
	StateError

	// StateDashboard shows the user header and the manageable server cards.
	StateDashboard
)

// String returns the state name for logging.
func (k StateKind) String() string {
	switch k {
	case StateAuthRequired:
		return "auth_required"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}

// ViewState is the projection the renderer paints. Message is set for
// StateError; Session and Guilds for StateDashboard. Guilds hold only the
// entries where the user has the Administrator permission, in the order
// Discord returned them.
type ViewState struct {
	Kind    StateKind
	Message string

	// Retryable distinguishes a transient load failure (retry reloads the
	// dashboard with the preserved session) from an authorization denial
	// (recovery requires logging in again).
	Retryable bool

	Session *session.Session
	Guilds  []discord.Guild

	// CleanURL is set when the resolving request consumed a "user" query
	// parameter; the handler must rewrite the visible URL so a reload
	// falls back to the persisted session.
	CleanURL bool
}

// AuthRequired returns the unauthenticated view state.
func AuthRequired() ViewState {
	return ViewState{Kind: StateAuthRequired}
}

// Loading returns the in-flight view state.
func Loading() ViewState {
	return ViewState{Kind: StateLoading}
}

// ErrorState returns a failure view state with the given message.
func ErrorState(message string, retryable bool) ViewState {
	return ViewState{Kind: StateError, Message: message, Retryable: retryable}
}

// DashboardState returns the authenticated view state.
func DashboardState(s *session.Session, guilds []discord.Guild) ViewState {
	return ViewState{Kind: StateDashboard, Session: s, Guilds: guilds}
}
