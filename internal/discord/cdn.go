package discord

import (
	"fmt"
	"strconv"
)

const cdnBase = "https://cdn.discordapp.com"

// defaultAvatarCount is the number of built-in embed avatars Discord cycles
// through for users without a custom avatar.
const defaultAvatarCount = 5

// AvatarURL returns the CDN URL for a user's avatar. When the user has no
// custom avatar hash, the default embed avatar keyed by the discriminator
// is returned instead.
func AvatarURL(userID, avatarHash, discriminator string) string {
	if avatarHash == "" {
		return DefaultAvatarURL(discriminator)
	}
	return fmt.Sprintf("%s/avatars/%s/%s.png", cdnBase, userID, avatarHash)
}

// DefaultAvatarURL returns one of Discord's built-in embed avatars. The
// selection is keyed by the numeric discriminator modulo the avatar count;
// a non-numeric discriminator falls back to index 0.
func DefaultAvatarURL(discriminator string) string {
	index := 0
	if n, err := strconv.Atoi(discriminator); err == nil {
		index = n % defaultAvatarCount
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBase, index)
}

// GuildIconURL returns the CDN URL for a guild icon, or "" when the guild
// has no icon hash. Callers render a placeholder for the empty case.
func GuildIconURL(guildID, iconHash string) string {
	if iconHash == "" {
		return ""
	}
	return fmt.Sprintf("%s/icons/%s/%s.png", cdnBase, guildID, iconHash)
}
