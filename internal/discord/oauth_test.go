package discord

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthURL(t *testing.T) {
	creds := OAuthCredentials{
		ClientID:    "client123",
		RedirectURL: "https://tomat.example/auth/exchange",
	}

	raw := AuthURL(creds, "nonce42")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "client123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://tomat.example/auth/exchange", q.Get("redirect_uri"))
	assert.Equal(t, "identify guilds", q.Get("scope"))
	assert.Equal(t, "nonce42", q.Get("state"))
}

func TestBotInviteURL(t *testing.T) {
	raw := BotInviteURL("client123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client123", q.Get("client_id"))
	assert.Equal(t, "bot applications.commands", q.Get("scope"))
	assert.Equal(t, "8", q.Get("permissions"))
}
