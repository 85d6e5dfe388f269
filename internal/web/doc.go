// Package web serves the Shockwave site: the landing page, the dashboard,
// the OAuth login/callback endpoints, and the JSON APIs.
//
// The dashboard handler is a thin shell around dashboard.Controller: it
// maps the session cookie to a store ID, hands the query parameters to the
// controller, and renders whichever ViewState comes back. View rendering
// is a pure projection through html/template; exactly one panel is emitted
// per response.
//
// Endpoints:
//
//	GET  /                 landing page
//	GET  /dashboard        resolve and render the dashboard view state
//	GET  /auth/login       redirect to the Discord authorization URL
//	GET  /auth/exchange    OAuth callback; redirects back with user= or error=
//	POST /auth/logout      clear the session
//	GET  /api/user/guilds  bearer-authorized guild listing (401 on bad token)
//	GET  /api/stats        landing page counters
package web
