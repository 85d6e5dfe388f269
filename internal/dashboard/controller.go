package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/thetomat/tomat/internal/discord"
	"github.com/thetomat/tomat/internal/instrumentation"
	"github.com/thetomat/tomat/internal/logging"
	"github.com/thetomat/tomat/internal/session"
)

// GuildSource lists the guilds visible to an access token. Implemented by
// *discord.Client in production and by fakes in tests.
type GuildSource interface {
	UserGuilds(ctx context.Context, accessToken string) ([]discord.Guild, error)
}

// IdentitySource resolves the user identity behind an access token.
type IdentitySource interface {
	CurrentUser(ctx context.Context, accessToken string) (*discord.User, error)
}

// Config selects the controller variant. The three historical dashboard
// versions collapse into this one configurable flow.
type Config struct {
	// UseBackendExchange enables the production path: authorization codes
	// are exchanged with Discord and the identity is fetched with the
	// resulting token. When false, codes resolve to fixture data.
	UseBackendExchange bool

	// Credentials is the opaque OAuth client registration.
	Credentials discord.OAuthCredentials

	// StorageScope selects the session cookie lifetime.
	StorageScope session.Scope

	// Delay is the injected asynchronous boundary used by the mock
	// exchange. Tests leave it nil; mock serving wires a real sleep so the
	// simulated latency of the original demo survives.
	Delay func(ctx context.Context) error
}

// Controller drives the view-state machine: it inspects the page query
// parameters and the session store, runs the guild load, and produces the
// single active ViewState for the request.
type Controller struct {
	store   session.Store
	guilds  GuildSource
	users   IdentitySource
	cfg     Config
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	// onTransition observes intermediate states (StateLoading) before the
	// suspension point. Nil outside of tests and streaming renderers.
	onTransition func(ViewState)
}

// NewController creates a Controller. If logger is nil, slog.Default() is
// used.
func NewController(store session.Store, guilds GuildSource, users IdentitySource, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		guilds: guilds,
		users:  users,
		cfg:    cfg,
		logger: logging.WithComponent(logger, "dashboard"),
	}
}

// SetMetrics attaches a metrics recorder.
func (c *Controller) SetMetrics(m *instrumentation.Metrics) {
	c.metrics = m
}

// SetTransitionHook registers an observer for intermediate states.
func (c *Controller) SetTransitionHook(fn func(ViewState)) {
	c.onTransition = fn
}

// Scope returns the configured session cookie scope.
func (c *Controller) Scope() session.Scope {
	return c.cfg.StorageScope
}

// LoginURL returns the Discord authorization URL for the login action.
func (c *Controller) LoginURL(state string) string {
	return discord.AuthURL(c.cfg.Credentials, state)
}

// InviteURL returns the bot install link shown by the empty-dashboard
// call-to-action.
func (c *Controller) InviteURL() string {
	return discord.BotInviteURL(c.cfg.Credentials.ClientID)
}

// Resolve runs the entry state machine for one page load. Query parameters
// are consulted in priority order: error, user, code. With none present the
// session store decides between the dashboard and the login prompt.
func (c *Controller) Resolve(ctx context.Context, sessionID string, params url.Values) ViewState {
	if msg := params.Get("error"); msg != "" {
		// Authorization denied upstream. Terminal for this load; the
		// session store is left untouched.
		c.logger.Warn("authorization denied",
			logging.Operation("resolve"),
			slog.String("reason", msg))
		if c.metrics != nil {
			c.metrics.RecordOAuthAuth(ctx, "failure")
		}
		return ErrorState(fmt.Sprintf("Discord authorization failed: %s", msg), false)
	}

	if payload := params.Get("user"); payload != "" {
		return c.resolveUserPayload(ctx, sessionID, payload)
	}

	if code := params.Get("code"); code != "" {
		return c.resolveCode(ctx, sessionID, code)
	}

	// No parameters: fall back to the persisted session.
	sess, err := c.store.Load(ctx, sessionID)
	if err != nil || !sess.Valid() {
		return AuthRequired()
	}
	return c.loadDashboard(ctx, sessionID, sess)
}

// resolveUserPayload handles the OAuth redirect carrying a pre-encoded
// session. A payload that fails to decode is discarded silently; the user
// just sees the login prompt again.
func (c *Controller) resolveUserPayload(ctx context.Context, sessionID, payload string) ViewState {
	sess, err := session.DecodePayload(payload)
	if err != nil {
		c.logger.Debug("discarding malformed session payload",
			logging.Operation("resolve"),
			logging.Err(err))
		return AuthRequired()
	}

	if err := c.store.Save(ctx, sessionID, sess); err != nil {
		c.logger.Error("failed to persist session",
			logging.Operation("resolve"),
			logging.Err(err))
		return ErrorState("Couldn't start your session. Please try again.", true)
	}

	if c.metrics != nil {
		c.metrics.RecordOAuthAuth(ctx, "success")
		c.metrics.IncrementActiveSessions(ctx)
	}
	c.logger.Info("session established",
		logging.Operation("resolve"),
		logging.UserHash(sess.UserID))

	state := c.loadDashboard(ctx, sessionID, sess)
	// The user parameter was consumed: the visible URL must be cleaned so a
	// reload re-enters through the persisted session.
	state.CleanURL = true
	return state
}

// resolveCode handles an un-exchanged authorization code reaching the
// dashboard directly. With the backend exchange enabled the code is
// exchanged inline; otherwise the mock variant fabricates the fixture
// session after the injected delay.
func (c *Controller) resolveCode(ctx context.Context, sessionID, code string) ViewState {
	sess, err := c.Exchange(ctx, code)
	if err != nil {
		c.logger.Warn("code exchange failed",
			logging.Operation("exchange"),
			logging.Err(err))
		return ErrorState("Discord login failed. Please try again.", false)
	}

	if err := c.store.Save(ctx, sessionID, sess); err != nil {
		return ErrorState("Couldn't start your session. Please try again.", true)
	}
	if c.metrics != nil {
		c.metrics.RecordOAuthAuth(ctx, "success")
		c.metrics.IncrementActiveSessions(ctx)
	}

	state := c.loadDashboard(ctx, sessionID, sess)
	state.CleanURL = true
	return state
}

// Exchange turns an authorization code into a Session. The production path
// performs the token exchange and identity lookup against Discord; the mock
// path returns the fixture identity after the simulated latency.
func (c *Controller) Exchange(ctx context.Context, code string) (*session.Session, error) {
	if !c.cfg.UseBackendExchange {
		if c.cfg.Delay != nil {
			if err := c.cfg.Delay(ctx); err != nil {
				return nil, err
			}
		}
		user := discord.FixtureUser()
		return &session.Session{
			UserID:        user.ID,
			Username:      user.Username,
			Discriminator: user.Discriminator,
			AvatarHash:    user.Avatar,
			AccessToken:   fmt.Sprintf("mock_access_token_%d", time.Now().UnixMilli()),
		}, nil
	}

	start := time.Now()
	token, err := discord.ExchangeCode(ctx, c.cfg.Credentials, code)
	if c.metrics != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		c.metrics.RecordOAuthExchange(ctx, result)
		c.metrics.RecordDiscordAPIOperation(ctx, "token_exchange", result, time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	user, err := c.users.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user identity: %w", err)
	}

	return &session.Session{
		UserID:        user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		AvatarHash:    user.Avatar,
		AccessToken:   token.AccessToken,
	}, nil
}

// loadDashboard runs the guild load for an authenticated session. The
// Loading state is entered synchronously before the single suspension
// point. The result is filtered to guilds where the user holds the
// Administrator permission, preserving Discord's ordering.
func (c *Controller) loadDashboard(ctx context.Context, sessionID string, sess *session.Session) ViewState {
	if c.onTransition != nil {
		c.onTransition(Loading())
	}

	guilds, err := c.fetchGuilds(ctx, sess)
	if err != nil {
		if discord.IsUnauthorized(err) {
			// Token expired: the only externally-forced logout. Evict the
			// session silently and fall back to the login prompt.
			_ = c.store.Clear(ctx, sessionID)
			if c.metrics != nil {
				c.metrics.DecrementActiveSessions(ctx)
			}
			c.logger.Info("session evicted after auth rejection",
				logging.Operation("load_guilds"),
				logging.UserHash(sess.UserID))
			return AuthRequired()
		}

		// Transient failure: keep the session so retry does not require
		// re-authentication.
		c.logger.Warn("guild load failed",
			logging.Operation("load_guilds"),
			logging.UserHash(sess.UserID),
			logging.Err(err))
		return ErrorState("Couldn't load your servers. Please try again.", true)
	}

	admin := make([]discord.Guild, 0, len(guilds))
	for _, g := range guilds {
		if g.HasAdmin() {
			admin = append(admin, g)
		}
	}

	c.logger.Info("guilds loaded",
		logging.Operation("load_guilds"),
		logging.UserHash(sess.UserID),
		slog.Int("total", len(guilds)),
		slog.Int("admin", len(admin)))

	return DashboardState(sess, admin)
}

// fetchGuilds performs the single-attempt listing, from the fixture set in
// mock mode or from Discord otherwise.
func (c *Controller) fetchGuilds(ctx context.Context, sess *session.Session) ([]discord.Guild, error) {
	if !c.cfg.UseBackendExchange {
		if c.cfg.Delay != nil {
			if err := c.cfg.Delay(ctx); err != nil {
				return nil, err
			}
		}
		return discord.FixtureGuilds(), nil
	}
	return c.guilds.UserGuilds(ctx, sess.AccessToken)
}

// Logout clears the persisted session. No network round-trip is made.
func (c *Controller) Logout(ctx context.Context, sessionID string) {
	if err := c.store.Clear(ctx, sessionID); err != nil {
		c.logger.Error("failed to clear session",
			logging.Operation("logout"),
			logging.Err(err))
		return
	}
	if c.metrics != nil {
		c.metrics.DecrementActiveSessions(ctx)
	}
	c.logger.Info("session cleared", logging.Operation("logout"))
}
