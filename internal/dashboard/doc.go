// Package dashboard implements the authentication flow and guild-loading
// state machine behind the Shockwave dashboard.
//
// Each page load resolves to exactly one ViewState:
//
//	AuthRequired -> the Discord login prompt
//	Loading      -> guild listing outstanding
//	Error        -> a failure message with a retry affordance
//	Dashboard    -> the user header plus admin-filtered server cards
//
// The Controller consults the page query parameters in priority order
// (error, user, code) and falls back to the session store. The guild load
// is the flow's single asynchronous suspension point; it is a one-attempt
// operation with no retry or backoff. A 401 from Discord evicts the
// persisted session (forced logout); any other failure preserves it so a
// manual retry does not require re-authentication.
//
// The Config flag UseBackendExchange selects between the production
// authorization-code exchange and the fixture-backed mock variant; the two
// historical mock dashboards and the backend-exchange dashboard all map to
// this one flow.
package dashboard
