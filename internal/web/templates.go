package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/thetomat/tomat/internal/dashboard"
	"github.com/thetomat/tomat/internal/discord"
)

// pageData is the view model handed to the dashboard template. Exactly one
// panel renders, selected by State.Kind.
type pageData struct {
	State     dashboard.ViewState
	LoginURL  string
	InviteURL string
	AvatarURL string
	Tag       string
	Cards     []serverCard
}

// serverCard is the per-guild view model.
type serverCard struct {
	ID          string
	Name        string
	IconURL     string
	Initial     string
	Role        string
	MemberCount int
}

// statsData backs the landing page counters.
type statsData struct {
	Servers        int     `json:"servers"`
	Users          int     `json:"users"`
	ThreatsBlocked int     `json:"threats_blocked"`
	UptimePercent  float64 `json:"uptime_percent"`
}

const landingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Shockwave - Discord Protection Bot</title>
</head>
<body>
<header class="hero">
  <h1>Shockwave</h1>
  <p>Advanced protection for your Discord community.</p>
  <a class="cta-button" href="/dashboard">Open Dashboard</a>
</header>
<section class="stats">
  <div class="stat"><span id="servers-count">{{.Servers}}</span> Servers</div>
  <div class="stat"><span id="users-count">{{.Users}}</span> Users</div>
  <div class="stat"><span id="threats-count">{{.ThreatsBlocked}}</span> Threats Blocked</div>
  <div class="stat"><span id="uptime-count">{{.UptimePercent}}</span>% Uptime</div>
</section>
</body>
</html>
`

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Shockwave Dashboard</title>
</head>
<body>
{{if .State.CleanURL}}<script>history.replaceState({}, document.title, window.location.pathname);</script>{{end}}
{{if eq .State.Kind 0}}
<section id="auth-section" class="auth-panel">
  <h2>Login Required</h2>
  <p>Log in with Discord to manage your servers.</p>
  <a class="cta-button" href="{{.LoginURL}}">Login with Discord</a>
</section>
{{else if eq .State.Kind 1}}
<section id="loading" class="loading-panel">
  <div class="spinner"></div>
  <p>Loading your dashboard…</p>
</section>
{{else if eq .State.Kind 2}}
<section id="auth-error" class="error-panel">
  <h2>Something went wrong</h2>
  <p>{{.State.Message}}</p>
  {{if .State.Retryable}}
  <a id="retry-load" class="cta-button" href="/dashboard">Retry</a>
  {{else}}
  <a id="retry-auth" class="cta-button" href="{{.LoginURL}}">Try logging in again</a>
  {{end}}
</section>
{{else}}
<section id="dashboard-content">
  <header class="user-header">
    <img id="user-avatar" src="{{.AvatarURL}}" alt="{{.State.Session.Username}}">
    <div class="user-info">
      <span id="username">{{.Tag}}</span>
      <span id="user-id">ID: {{.State.Session.UserID}}</span>
    </div>
    <form method="post" action="/auth/logout">
      <button id="logout-btn" type="submit">Logout</button>
    </form>
  </header>
  <div id="servers-container">
  {{if .Cards}}
    {{range .Cards}}
    <div class="server-card" data-guild-id="{{.ID}}">
      <div class="server-icon">
        {{if .IconURL}}<img src="{{.IconURL}}" alt="{{.Name}}">{{else}}<span class="icon-initial">{{.Initial}}</span>{{end}}
      </div>
      <h3>{{.Name}}</h3>
      <p>{{.Role}}</p>
      {{if .MemberCount}}<p class="member-count">{{.MemberCount}} members</p>{{end}}
      <div class="server-actions">
        <button class="manage-btn" onclick="alert('Server management for {{.Name}} is coming soon.')">Manage</button>
        <button class="invite-btn" onclick="alert('Invite management for {{.Name}} is coming soon.')">Invite</button>
      </div>
    </div>
    {{end}}
  {{else}}
    <div class="server-placeholder">
      <p>No servers found where you have administrative permissions and Shockwave is installed.</p>
      <a class="cta-button" href="{{.InviteURL}}">Add Shockwave to a Server</a>
    </div>
  {{end}}
  </div>
</section>
{{end}}
</body>
</html>
`

// Renderer projects view states into HTML.
type Renderer struct {
	landing   *template.Template
	dashboard *template.Template
}

// NewRenderer parses the page templates.
func NewRenderer() (*Renderer, error) {
	landing, err := template.New("landing").Parse(landingTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse landing template: %w", err)
	}
	dash, err := template.New("dashboard").Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &Renderer{landing: landing, dashboard: dash}, nil
}

// RenderLanding writes the landing page.
func (r *Renderer) RenderLanding(w io.Writer, stats statsData) error {
	return r.landing.Execute(w, stats)
}

// RenderDashboard writes the panel for the given view state.
func (r *Renderer) RenderDashboard(w io.Writer, state dashboard.ViewState, loginURL, inviteURL string) error {
	data := pageData{
		State:     state,
		LoginURL:  loginURL,
		InviteURL: inviteURL,
	}

	if state.Kind == dashboard.StateDashboard && state.Session != nil {
		s := state.Session
		data.AvatarURL = discord.AvatarURL(s.UserID, s.AvatarHash, s.Discriminator)
		data.Tag = userTag(s.Username, s.Discriminator)
		data.Cards = make([]serverCard, 0, len(state.Guilds))
		for _, g := range state.Guilds {
			data.Cards = append(data.Cards, serverCard{
				ID:          g.ID,
				Name:        g.Name,
				IconURL:     discord.GuildIconURL(g.ID, g.Icon),
				Initial:     guildInitial(g.Name),
				Role:        g.RoleLabel(),
				MemberCount: g.MemberCount,
			})
		}
	}

	return r.dashboard.Execute(w, data)
}

// userTag formats the displayed user name. Accounts migrated off the legacy
// discriminator system ("0") show the bare username.
func userTag(username, discriminator string) string {
	if discriminator == "" || discriminator == "0" {
		return username
	}
	return username + "#" + discriminator
}

// guildInitial is the placeholder shown for guilds without an icon.
func guildInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
