package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetomat/tomat/internal/dashboard"
	"github.com/thetomat/tomat/internal/discord"
	"github.com/thetomat/tomat/internal/session"
)

func renderState(t *testing.T, state dashboard.ViewState) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, r.RenderDashboard(&buf, state, "/auth/login", "https://discord.com/oauth2/authorize?client_id=cid"))
	return buf.String()
}

func TestRenderAuthRequired(t *testing.T) {
	html := renderState(t, dashboard.AuthRequired())

	assert.Contains(t, html, `id="auth-section"`)
	assert.Contains(t, html, "Login with Discord")
	assert.Contains(t, html, `href="/auth/login"`)
	assert.NotContains(t, html, "dashboard-content")
	assert.NotContains(t, html, "history.replaceState")
}

func TestRenderLoading(t *testing.T) {
	html := renderState(t, dashboard.Loading())

	assert.Contains(t, html, `id="loading"`)
	assert.NotContains(t, html, "auth-section")
}

func TestRenderError(t *testing.T) {
	t.Run("retryable keeps the dashboard retry link", func(t *testing.T) {
		html := renderState(t, dashboard.ErrorState("Couldn't load your servers. Please try again.", true))

		assert.Contains(t, html, `id="auth-error"`)
		assert.Contains(t, html, "load your servers")
		assert.Contains(t, html, `id="retry-load"`)
		assert.NotContains(t, html, `id="retry-auth"`)
	})

	t.Run("non-retryable routes back to login", func(t *testing.T) {
		html := renderState(t, dashboard.ErrorState("Discord authorization failed: access_denied", false))

		assert.Contains(t, html, "access_denied")
		assert.Contains(t, html, `id="retry-auth"`)
		assert.NotContains(t, html, `id="retry-load"`)
	})
}

func TestRenderDashboardCards(t *testing.T) {
	sess := &session.Session{UserID: "111", Username: "Bob", Discriminator: "1234"}
	guilds := []discord.Guild{
		{ID: "1", Name: "Alpha", Icon: "deadbeef", Owner: true, Permissions: discord.PermissionAdministrator, MemberCount: 42},
		{ID: "2", Name: "beta", Permissions: discord.PermissionAdministrator},
	}

	html := renderState(t, dashboard.DashboardState(sess, guilds))

	assert.Contains(t, html, `id="dashboard-content"`)
	assert.Contains(t, html, "Bob#1234")
	assert.Contains(t, html, "ID: 111")
	assert.Contains(t, html, "https://cdn.discordapp.com/embed/avatars/4.png")
	assert.Contains(t, html, `action="/auth/logout"`)

	// First card has an icon, Owner role, and member count.
	assert.Contains(t, html, `data-guild-id="1"`)
	assert.Contains(t, html, "https://cdn.discordapp.com/icons/1/deadbeef.png")
	assert.Contains(t, html, "Owner")
	assert.Contains(t, html, "42 members")

	// Second card falls back to the initial placeholder.
	assert.Contains(t, html, `data-guild-id="2"`)
	assert.Contains(t, html, `<span class="icon-initial">B</span>`)
	assert.Contains(t, html, "Administrator")

	assert.NotContains(t, html, "server-placeholder")
}

func TestRenderDashboardEmpty(t *testing.T) {
	sess := &session.Session{UserID: "111", Username: "Bob", Discriminator: "0"}

	html := renderState(t, dashboard.DashboardState(sess, nil))

	assert.Contains(t, html, "server-placeholder")
	assert.Contains(t, html, "Add Shockwave to a Server")
	assert.Contains(t, html, "https://discord.com/oauth2/authorize?client_id=cid")
	assert.NotContains(t, html, "server-card")

	// Migrated accounts drop the discriminator tag.
	assert.Contains(t, html, "<span id=\"username\">Bob</span>")
}

func TestRenderCleanURLScript(t *testing.T) {
	sess := &session.Session{UserID: "111", Username: "Bob"}
	state := dashboard.DashboardState(sess, nil)
	state.CleanURL = true

	html := renderState(t, state)
	assert.Contains(t, html, "history.replaceState")
}

func TestRenderLandingStats(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, r.RenderLanding(&buf, statsData{
		Servers:        12500,
		Users:          5000000,
		ThreatsBlocked: 25000000,
		UptimePercent:  99.9,
	}))

	html := buf.String()
	assert.Contains(t, html, `id="servers-count"`)
	assert.Contains(t, html, "12500")
	assert.Contains(t, html, "99.9")
	assert.Contains(t, html, `href="/dashboard"`)
}

func TestUserTag(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		discriminator string
		want          string
	}{
		{name: "legacy tag", username: "Bob", discriminator: "1234", want: "Bob#1234"},
		{name: "migrated account", username: "Bob", discriminator: "0", want: "Bob"},
		{name: "missing discriminator", username: "Bob", discriminator: "", want: "Bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userTag(tt.username, tt.discriminator))
		})
	}
}

func TestGuildInitial(t *testing.T) {
	assert.Equal(t, "A", guildInitial("alpha"))
	assert.Equal(t, "Ü", guildInitial("über server"))
	assert.Equal(t, "?", guildInitial("   "))
}
