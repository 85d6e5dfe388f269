package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		avatarHash    string
		discriminator string
		want          string
	}{
		{
			name:          "custom avatar",
			userID:        "123456789",
			avatarHash:    "a1b2c3",
			discriminator: "1234",
			want:          "https://cdn.discordapp.com/avatars/123456789/a1b2c3.png",
		},
		{
			name:          "no avatar falls back to default keyed by discriminator",
			userID:        "123456789",
			avatarHash:    "",
			discriminator: "1234",
			want:          "https://cdn.discordapp.com/embed/avatars/4.png",
		},
		{
			name:          "no avatar and non-numeric discriminator",
			userID:        "123456789",
			avatarHash:    "",
			discriminator: "abcd",
			want:          "https://cdn.discordapp.com/embed/avatars/0.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvatarURL(tt.userID, tt.avatarHash, tt.discriminator))
		})
	}
}

func TestDefaultAvatarURLModulo(t *testing.T) {
	// The five built-in avatars cycle by discriminator modulo 5.
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", DefaultAvatarURL("0"))
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", DefaultAvatarURL("5"))
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/3.png", DefaultAvatarURL("8"))
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/4.png", DefaultAvatarURL("9999"))
}

func TestGuildIconURL(t *testing.T) {
	assert.Equal(t, "https://cdn.discordapp.com/icons/42/deadbeef.png", GuildIconURL("42", "deadbeef"))
	assert.Empty(t, GuildIconURL("42", ""))
}
