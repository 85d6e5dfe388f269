package discord

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/oauth2"
)

// Endpoint is Discord's OAuth2 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// Scopes requested for dashboard logins: identity plus the guild listing.
var Scopes = []string{"identify", "guilds"}

// OAuthCredentials holds the application's OAuth client registration.
// The values are opaque configuration, never computed.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OAuthConfig builds the oauth2 configuration for the authorization-code flow.
func OAuthConfig(creds OAuthCredentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  creds.RedirectURL,
		Scopes:       Scopes,
	}
}

// AuthURL returns the Discord authorization URL users are sent to on login.
func AuthURL(creds OAuthCredentials, state string) string {
	return OAuthConfig(creds).AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token.
func ExchangeCode(ctx context.Context, creds OAuthCredentials, code string) (*oauth2.Token, error) {
	token, err := OAuthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return token, nil
}

// BotInviteURL returns the authorization link for installing the bot into a
// guild with the Administrator permission. Shown as the call-to-action when
// the user manages no guilds yet.
func BotInviteURL(clientID string) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("scope", "bot applications.commands")
	q.Set("permissions", fmt.Sprintf("%d", PermissionAdministrator))
	return Endpoint.AuthURL + "?" + q.Encode()
}
