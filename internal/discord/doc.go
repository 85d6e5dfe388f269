// Package discord provides the Discord OAuth2 flow and the REST client the
// dashboard uses.
//
// This package offers:
//   - The authorization-code flow (AuthURL, ExchangeCode) via golang.org/x/oauth2
//   - Bearer-authorized REST calls for the current user and their guild list
//   - CDN URL construction for avatars, default avatars, and guild icons
//   - The bot install (invite) authorization link
//   - Fixture user/guild data for mock mode and tests
//
// Requests are single-attempt with a bounded client timeout. Failures are
// reported as *APIError carrying the operation name and HTTP status;
// IsUnauthorized distinguishes the token-expiry case (401), which is the
// only failure that forces a logout upstream.
//
// Example usage:
//
//	client := discord.NewClient(logger)
//	guilds, err := client.UserGuilds(ctx, session.AccessToken)
//	if discord.IsUnauthorized(err) {
//	    // token expired: evict the session
//	}
package discord
