package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/thetomat/tomat/internal/dashboard"
	"github.com/thetomat/tomat/internal/discord"
	"github.com/thetomat/tomat/internal/logging"
	"github.com/thetomat/tomat/internal/session"
)

// stateCookie carries the OAuth state nonce between the login redirect and
// the exchange callback.
const stateCookie = "shockwave_oauth_state"

// productStats are the landing page counters. Static product figures, not
// live telemetry.
var productStats = statsData{
	Servers:        12500,
	Users:          5000000,
	ThreatsBlocked: 25000000,
	UptimePercent:  99.9,
}

// Handler serves the dashboard pages and the auth/guild API endpoints.
type Handler struct {
	controller *dashboard.Controller
	guilds     dashboard.GuildSource
	renderer   *Renderer
	logger     *slog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(controller *dashboard.Controller, guilds dashboard.GuildSource, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		controller: controller,
		guilds:     guilds,
		renderer:   renderer,
		logger:     logging.WithComponent(logger, "web"),
	}, nil
}

// Register attaches all routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Landing)
	mux.HandleFunc("GET /dashboard", h.Dashboard)
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/exchange", h.Exchange)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /api/user/guilds", h.UserGuilds)
	mux.HandleFunc("GET /api/stats", h.Stats)
}

// Landing serves the marketing landing page.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderLanding(w, productStats); err != nil {
		h.logger.Error("failed to render landing page", logging.Err(err))
	}
}

// Dashboard resolves and renders the dashboard view state for this request.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id := session.ReadCookie(r)
	if id == "" {
		id = session.NewID()
		session.WriteCookie(w, id, h.controller.Scope(), session.DefaultSessionTTL)
	}

	state := h.controller.Resolve(r.Context(), id, r.URL.Query())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The page links to /auth/login rather than the raw authorization URL
	// so the state nonce is always issued by the login handler.
	if err := h.renderer.RenderDashboard(w, state, "/auth/login", h.controller.InviteURL()); err != nil {
		h.logger.Error("failed to render dashboard", logging.Err(err))
	}
}

// Login sends the user to the Discord authorization URL with a fresh state
// nonce.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.controller.LoginURL(state), http.StatusFound)
}

// Exchange is the OAuth callback target. It exchanges the authorization
// code, then redirects back to the dashboard with either an encoded session
// payload or an error reason, matching the contract the dashboard resolves.
func (h *Handler) Exchange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if reason := q.Get("error"); reason != "" {
		h.redirectDashboard(w, r, url.Values{"error": {reason}})
		return
	}

	code := q.Get("code")
	if code == "" {
		h.redirectDashboard(w, r, url.Values{"error": {"missing_code"}})
		return
	}

	// The state nonce is only enforced when the login flow issued one;
	// callbacks from externally-initiated authorizations carry none.
	if c, err := r.Cookie(stateCookie); err == nil && c.Value != "" {
		if q.Get("state") != c.Value {
			h.logger.Warn("state mismatch on OAuth callback", logging.Operation("exchange"))
			h.redirectDashboard(w, r, url.Values{"error": {"state_mismatch"}})
			return
		}
	}

	sess, err := h.controller.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Warn("exchange failed", logging.Operation("exchange"), logging.Err(err))
		h.redirectDashboard(w, r, url.Values{"error": {"exchange_failed"}})
		return
	}

	payload, err := session.EncodePayload(sess)
	if err != nil {
		h.redirectDashboard(w, r, url.Values{"error": {"exchange_failed"}})
		return
	}
	h.redirectDashboard(w, r, url.Values{"user": {payload}})
}

// Logout clears the session and returns to the login prompt. No request to
// Discord is made.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := session.ReadCookie(r); id != "" {
		h.controller.Logout(r.Context(), id)
	}
	session.ClearCookie(w)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// UserGuilds is the bearer-authorized guild listing API. It returns the
// guild records as received; admin filtering is the dashboard's concern.
func (h *Handler) UserGuilds(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	guilds, err := h.guilds.UserGuilds(r.Context(), token)
	if err != nil {
		if discord.IsUnauthorized(err) {
			writeJSONError(w, http.StatusUnauthorized, "token rejected")
			return
		}
		h.logger.Warn("guild listing failed", logging.Operation("user_guilds"), logging.Err(err))
		writeJSONError(w, http.StatusBadGateway, "guild listing unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(guilds)
}

// Stats serves the landing page counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(productStats)
}

func (h *Handler) redirectDashboard(w http.ResponseWriter, r *http.Request, params url.Values) {
	target := "/dashboard"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
